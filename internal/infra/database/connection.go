package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq" // driver de Postgres
)

// NewDBConnection abre el pool contra Supabase Postgres y prueba el ping.
func NewDBConnection(connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// El ping acotado evita que un Supabase caído cuelgue el arranque
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return db, nil
}
