package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cafe-gandom/bot"
	"cafe-gandom/config"
	"cafe-gandom/db"
	"cafe-gandom/kv"
	"cafe-gandom/lang"
	"cafe-gandom/mq"
	"cafe-gandom/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	// Check for migrate subcommand
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		runMigrate(cfg)
		return
	}

	if cfg.Telegram.Token == "" {
		fmt.Fprintln(os.Stderr, "TOKEN not set")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "storage:", err)
		os.Exit(1)
	}
	defer store.Close()
	defer db.Close()

	opts := []services.OrderStoreOption{
		services.WithDeletePrompt(lang.T(cfg.Lang, "delete_prompt")),
	}

	// New-order notices go to ADMIN_CHAT_ID through MESSAGE_TOKEN, or the main bot when unset.
	if cfg.Telegram.AdminChatID != 0 {
		token := cfg.Telegram.MessageToken
		if token == "" {
			token = cfg.Telegram.Token
		}
		notifier, err := bot.NewAdminNotifier(token, cfg.Telegram.AdminChatID, cfg.Lang)
		if err != nil {
			log.Printf("warning: failed to initialize message bot: %v", err)
		} else {
			opts = append(opts, services.WithNotifier(notifier))
		}
	}

	if cfg.AMQP.URL != "" {
		client, err := mq.Dial(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			log.Printf("warning: order events disabled: %v", err)
		} else {
			defer client.Close()
			publisher := mq.NewPublisher(client, cfg.AMQP.Exchange)
			defer publisher.Close()
			opts = append(opts, services.WithNotifier(publisher))
		}
	}

	orders := services.NewOrderStore(store, cfg.Storage.Key, opts...)
	if err := orders.Load(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "orders:", err)
		os.Exit(1)
	}

	sessions := services.NewSessions(services.NewAuthenticator(cfg.Admin), lang.T(cfg.Lang, "login_error"))
	b, err := bot.New(cfg, orders, services.DefaultCatalog(), sessions)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bot:", err)
		os.Exit(1)
	}

	fmt.Println("Bot started.")
	b.Start(ctx)
}

// openStore returns the kv backend named by STORAGE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config) (kv.Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Printf("storage: memory (orders are lost on restart)")
		return kv.NewMemory(), nil
	case config.StorageFile:
		log.Printf("storage: file in %s", cfg.Storage.Dir)
		return kv.NewFile(cfg.Storage.Dir)
	case config.StoragePostgres:
		if err := db.Init(ctx, cfg.DB); err != nil {
			return nil, fmt.Errorf("db: %w", err)
		}
		applied, err := db.Migrate(ctx, db.Pool)
		if err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		for _, name := range applied {
			log.Printf("migration %s applied", name)
		}
		p := kv.NewPostgres(db.Pool)
		log.Printf("storage: postgres %s:%d/%s", cfg.DB.Host, cfg.DB.Port, cfg.DB.Database)
		return p, nil
	case config.StorageMongo:
		m, err := kv.NewMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		log.Printf("storage: mongo %s.%s", cfg.Mongo.Database, cfg.Mongo.Collection)
		return m, nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
	}
}

func runMigrate(cfg *config.Config) {
	ctx := context.Background()
	if err := db.Init(ctx, cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer db.Close()

	applied, err := db.Migrate(ctx, db.Pool)
	if err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
	if len(applied) == 0 {
		fmt.Println("No pending migrations.")
	}
	for _, name := range applied {
		fmt.Println("Migration", name, "applied.")
	}
}
