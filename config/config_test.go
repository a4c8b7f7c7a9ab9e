package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"STORAGE_DRIVER", "STORAGE_KEY", "ADMIN_USERNAME", "ADMIN_PASSWORD", "ADMIN_CHAT_ID", "DB_PORT"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Driver != StorageFile {
		t.Errorf("Storage.Driver = %q, want %q", cfg.Storage.Driver, StorageFile)
	}
	if cfg.Storage.Key != "cafe_gandom_orders" {
		t.Errorf("Storage.Key = %q, want cafe_gandom_orders", cfg.Storage.Key)
	}
	if cfg.Admin.Username != "admin" || cfg.Admin.Password != "admin" {
		t.Errorf("Admin = %+v, want admin/admin", cfg.Admin)
	}
	if cfg.DB.Port != 5432 {
		t.Errorf("DB.Port = %d, want 5432", cfg.DB.Port)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("ADMIN_CHAT_ID", "-100123")
	t.Setenv("DB_PORT", "6543")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Driver != StoragePostgres {
		t.Errorf("Storage.Driver = %q, want %q", cfg.Storage.Driver, StoragePostgres)
	}
	if cfg.Telegram.AdminChatID != -100123 {
		t.Errorf("AdminChatID = %d, want -100123", cfg.Telegram.AdminChatID)
	}
	if cfg.DB.Port != 6543 {
		t.Errorf("DB.Port = %d, want 6543", cfg.DB.Port)
	}
}
