package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/CaioSouzalimaa/clearbalance/config"
	"github.com/CaioSouzalimaa/clearbalance/pkg/helpers"
)

// Seeds a demo account with the default categories and a month of sample
// data so a fresh checkout has something on the dashboard.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@clearbalance.app"
	password := "password123"
	name := "Demo User"

	hasher := helpers.NewBcryptHasher(cfg.BcryptCost)
	hash, err := hasher.Hash(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, email, hash, name).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", userID, email, password)

	categories := []struct {
		name string
		icon string
	}{
		{"Moradia", "home"},
		{"Alimentação", "market"},
		{"Transporte", "transport"},
		{"Serviços", "energy"},
		{"Investimentos", "savings"},
		{"Renda", "work"},
	}
	catIDs := map[string]string{}
	for _, c := range categories {
		var id string
		err := db.QueryRow(`
			INSERT INTO categories (user_id, name, icon)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id, name) DO UPDATE SET icon = EXCLUDED.icon
			RETURNING id
		`, userID, c.name, c.icon).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed category %q: %v", c.name, err)
		}
		catIDs[c.name] = id
	}
	fmt.Printf("seeded %d categories\n", len(catIDs))

	monthStart := time.Now().AddDate(0, 0, 1-time.Now().Day())
	transactions := []struct {
		description string
		category    string
		txType      string
		amountCents int64
		day         int
	}{
		{"Salário", "Renda", "income", 850000, 1},
		{"Aluguel", "Moradia", "expense", 215000, 5},
		{"Supermercado", "Alimentação", "expense", 62000, 8},
		{"Aporte CDB", "Investimentos", "income", 120000, 12},
		{"Internet e energia", "Serviços", "expense", 31000, 15},
	}
	for _, t := range transactions {
		_, err := db.Exec(`
			INSERT INTO transactions (user_id, description, category_id, type, amount_cents, occurred_on)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, userID, t.description, catIDs[t.category], t.txType, t.amountCents, monthStart.AddDate(0, 0, t.day-1))
		if err != nil {
			log.Fatalf("failed to seed transaction %q: %v", t.description, err)
		}
	}
	fmt.Printf("seeded %d transactions\n", len(transactions))

	goals := []struct {
		name     string
		label    string
		target   int64
		saved    int64
		deadline string
	}{
		{"Reserva de emergência", "Segurança", 1200000, 745000, "2026-12-31"},
		{"Viagem para Portugal", "Lazer", 850000, 398000, "2027-03-31"},
		{"Entrada do carro", "Mobilidade", 2000000, 1270000, "2027-08-31"},
	}
	for _, g := range goals {
		deadline, _ := time.Parse("2006-01-02", g.deadline)
		_, err := db.Exec(`
			INSERT INTO goals (user_id, name, label, target_cents, saved_cents, deadline)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, userID, g.name, g.label, g.target, g.saved, deadline)
		if err != nil {
			log.Fatalf("failed to seed goal %q: %v", g.name, err)
		}
	}
	fmt.Printf("seeded %d goals\n", len(goals))
}
