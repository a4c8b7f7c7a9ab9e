package services

import (
	"errors"

	"cafe-gandom/models"
)

var ErrInvalidTransition = errors.New("action not allowed on this screen")

const defaultLoginError = "نام کاربری یا رمز عبور اشتباه است"

// LoginForm is what the admin has typed so far on the login screen.
type LoginForm struct {
	Username string
	Password string
}

// ViewController moves a session between the customer, admin-login and admin-dashboard screens.
//
//	customer --EnterAdmin--> admin-login --Login ok--> admin-dashboard
//	customer <----Back------ admin-login
//	customer <-----------------Exit------------------- admin-dashboard
type ViewController struct {
	view       models.AppView
	auth       Authenticator
	form       LoginForm
	loginError string
	errText    string
}

// NewViewController starts on the customer screen. errText is shown on a failed login;
// empty uses the default Persian message.
func NewViewController(auth Authenticator, errText string) *ViewController {
	if errText == "" {
		errText = defaultLoginError
	}
	return &ViewController{view: models.ViewCustomer, auth: auth, errText: errText}
}

func (v *ViewController) View() models.AppView { return v.view }

func (v *ViewController) LoginError() string { return v.loginError }

func (v *ViewController) Form() LoginForm { return v.form }

func (v *ViewController) EnterAdmin() error {
	if v.view != models.ViewCustomer {
		return ErrInvalidTransition
	}
	v.view = models.ViewAdminLogin
	v.loginError = ""
	return nil
}

func (v *ViewController) Back() error {
	if v.view != models.ViewAdminLogin {
		return ErrInvalidTransition
	}
	v.view = models.ViewCustomer
	v.form = LoginForm{}
	return nil
}

func (v *ViewController) Exit() error {
	if v.view != models.ViewAdminDashboard {
		return ErrInvalidTransition
	}
	v.view = models.ViewCustomer
	return nil
}

func (v *ViewController) SetUsername(username string) error {
	if v.view != models.ViewAdminLogin {
		return ErrInvalidTransition
	}
	v.form.Username = username
	return nil
}

func (v *ViewController) SetPassword(password string) error {
	if v.view != models.ViewAdminLogin {
		return ErrInvalidTransition
	}
	v.form.Password = password
	return nil
}

// SubmitLogin checks the form. On success the dashboard opens and the form and
// error are cleared; otherwise the screen stays on admin-login with an error.
func (v *ViewController) SubmitLogin() (bool, error) {
	if v.view != models.ViewAdminLogin {
		return false, ErrInvalidTransition
	}
	if v.auth != nil && v.auth.Authenticate(v.form.Username, v.form.Password) {
		v.view = models.ViewAdminDashboard
		v.loginError = ""
		v.form = LoginForm{}
		return true, nil
	}
	v.loginError = v.errText
	return false, nil
}

// Login fills the form and submits it in one step.
func (v *ViewController) Login(username, password string) (bool, error) {
	if v.view != models.ViewAdminLogin {
		return false, ErrInvalidTransition
	}
	v.form = LoginForm{Username: username, Password: password}
	return v.SubmitLogin()
}
