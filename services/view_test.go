package services

import (
	"errors"
	"testing"

	"cafe-gandom/models"
)

func newAdminView() *ViewController {
	return NewViewController(StaticCredentials{Username: "admin", Password: "admin"}, "")
}

func TestViewStartsOnCustomer(t *testing.T) {
	if v := newAdminView(); v.View() != models.ViewCustomer {
		t.Errorf("View = %q, want customer", v.View())
	}
}

func TestLoginWithDefaultCredentials(t *testing.T) {
	v := newAdminView()
	if err := v.EnterAdmin(); err != nil {
		t.Fatalf("EnterAdmin: %v", err)
	}
	ok, err := v.Login("admin", "admin")
	if err != nil || !ok {
		t.Fatalf("Login(admin, admin) = %v, %v", ok, err)
	}
	if v.View() != models.ViewAdminDashboard {
		t.Errorf("View = %q, want admin-dashboard", v.View())
	}
	if v.LoginError() != "" || v.Form() != (LoginForm{}) {
		t.Errorf("error %q / form %+v not cleared", v.LoginError(), v.Form())
	}
}

func TestLoginRejectsOtherPairs(t *testing.T) {
	pairs := []struct{ user, pass string }{
		{"admin", "Admin"},
		{"Admin", "admin"},
		{"admin", ""},
		{"", "admin"},
		{"", ""},
		{"admin ", "admin"},
		{"root", "toor"},
	}
	for _, p := range pairs {
		v := newAdminView()
		_ = v.EnterAdmin()
		ok, err := v.Login(p.user, p.pass)
		if err != nil || ok {
			t.Errorf("Login(%q, %q) = %v, %v; want false, nil", p.user, p.pass, ok, err)
		}
		if v.View() != models.ViewAdminLogin {
			t.Errorf("Login(%q, %q) moved to %q", p.user, p.pass, v.View())
		}
		if v.LoginError() == "" {
			t.Errorf("Login(%q, %q) left no error message", p.user, p.pass)
		}
	}
}

func TestLoginRetryAfterFailure(t *testing.T) {
	v := newAdminView()
	_ = v.EnterAdmin()
	for i := 0; i < 10; i++ {
		_, _ = v.Login("admin", "wrong")
	}
	if ok, _ := v.Login("admin", "admin"); !ok {
		t.Error("correct login refused after failures; there must be no lockout")
	}
}

func TestTwoStepLoginForm(t *testing.T) {
	v := newAdminView()
	_ = v.EnterAdmin()
	if err := v.SetUsername("admin"); err != nil {
		t.Fatal(err)
	}
	if err := v.SetPassword("admin"); err != nil {
		t.Fatal(err)
	}
	if ok, err := v.SubmitLogin(); !ok || err != nil {
		t.Errorf("SubmitLogin = %v, %v", ok, err)
	}
}

func TestViewTransitions(t *testing.T) {
	v := newAdminView()

	_ = v.EnterAdmin()
	_, _ = v.Login("x", "y")
	if err := v.Back(); err != nil {
		t.Fatalf("Back: %v", err)
	}
	if v.View() != models.ViewCustomer {
		t.Errorf("after Back: %q", v.View())
	}

	_ = v.EnterAdmin()
	if v.LoginError() != "" {
		t.Error("re-entering admin login should clear the old error")
	}
	_, _ = v.Login("admin", "admin")
	if err := v.Exit(); err != nil {
		t.Fatalf("Exit: %v", err)
	}
	if v.View() != models.ViewCustomer {
		t.Errorf("after Exit: %q", v.View())
	}
}

func TestUnreachableTransitions(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(v *ViewController)
		action func(v *ViewController) error
	}{
		{"exit from customer", func(*ViewController) {}, (*ViewController).Exit},
		{"back from customer", func(*ViewController) {}, (*ViewController).Back},
		{"login from customer", func(*ViewController) {}, func(v *ViewController) error {
			_, err := v.Login("admin", "admin")
			return err
		}},
		{"enter admin twice", func(v *ViewController) { _ = v.EnterAdmin() }, (*ViewController).EnterAdmin},
		{"exit from login", func(v *ViewController) { _ = v.EnterAdmin() }, (*ViewController).Exit},
		{"back from dashboard", func(v *ViewController) {
			_ = v.EnterAdmin()
			_, _ = v.Login("admin", "admin")
		}, (*ViewController).Back},
		{"enter admin from dashboard", func(v *ViewController) {
			_ = v.EnterAdmin()
			_, _ = v.Login("admin", "admin")
		}, (*ViewController).EnterAdmin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newAdminView()
			tt.setup(v)
			before := v.View()
			if err := tt.action(v); !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("err = %v, want ErrInvalidTransition", err)
			}
			if v.View() != before {
				t.Errorf("view changed %q -> %q", before, v.View())
			}
		})
	}
}

func TestCustomLoginErrorText(t *testing.T) {
	v := NewViewController(StaticCredentials{Username: "a", Password: "b"}, "Wrong username or password")
	_ = v.EnterAdmin()
	_, _ = v.Login("a", "c")
	if v.LoginError() != "Wrong username or password" {
		t.Errorf("LoginError = %q", v.LoginError())
	}
}

func TestNilAuthenticatorRefuses(t *testing.T) {
	v := NewViewController(nil, "")
	_ = v.EnterAdmin()
	if ok, _ := v.Login("admin", "admin"); ok {
		t.Error("nil authenticator must not let anyone in")
	}
}
