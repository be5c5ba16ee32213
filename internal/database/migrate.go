package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates all tables the service needs.  Every statement uses
// CREATE TABLE IF NOT EXISTS so the function is safe to run on every
// startup.  The unique key on tickets (journey_id, wagon_number,
// seat_number) is the authoritative guard against double-booking: the
// application validates seats before writing, but under concurrent
// bookings it is this constraint that decides the winner.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			role ENUM('ADMIN','CUSTOMER') NOT NULL DEFAULT 'CUSTOMER',
			is_active TINYINT(1) NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		) ENGINE=InnoDB`,

		`CREATE TABLE IF NOT EXISTS refresh_tokens (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT UNSIGNED NOT NULL,
			token_hash CHAR(64) NOT NULL UNIQUE,
			expires_at DATETIME NOT NULL,
			revoked_at DATETIME NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
		) ENGINE=InnoDB`,

		`CREATE TABLE IF NOT EXISTS train_types (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(63) NOT NULL UNIQUE
		) ENGINE=InnoDB`,

		`CREATE TABLE IF NOT EXISTS trains (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(63) NOT NULL,
			type_id BIGINT UNSIGNED NOT NULL,
			wagon_count INT UNSIGNED NOT NULL,
			wagon_capacity INT UNSIGNED NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT fk_trains_type FOREIGN KEY (type_id) REFERENCES train_types (id)
		) ENGINE=InnoDB`,

		`CREATE TABLE IF NOT EXISTS stations (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(63) NOT NULL,
			latitude DOUBLE NOT NULL,
			longitude DOUBLE NOT NULL
		) ENGINE=InnoDB`,

		`CREATE TABLE IF NOT EXISTS routes (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			source_id BIGINT UNSIGNED NOT NULL,
			destination_id BIGINT UNSIGNED NOT NULL,
			CONSTRAINT fk_routes_source FOREIGN KEY (source_id) REFERENCES stations (id) ON DELETE CASCADE,
			CONSTRAINT fk_routes_destination FOREIGN KEY (destination_id) REFERENCES stations (id) ON DELETE CASCADE
		) ENGINE=InnoDB`,

		`CREATE TABLE IF NOT EXISTS journeys (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			train_id BIGINT UNSIGNED NOT NULL,
			route_id BIGINT UNSIGNED NOT NULL,
			departure_time DATETIME NOT NULL,
			arrival_time DATETIME NOT NULL,
			CONSTRAINT fk_journeys_train FOREIGN KEY (train_id) REFERENCES trains (id) ON DELETE CASCADE,
			CONSTRAINT fk_journeys_route FOREIGN KEY (route_id) REFERENCES routes (id) ON DELETE CASCADE,
			INDEX idx_journeys_departure (departure_time)
		) ENGINE=InnoDB`,

		`CREATE TABLE IF NOT EXISTS orders (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT UNSIGNED NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT fk_orders_user FOREIGN KEY (user_id) REFERENCES users (id),
			INDEX idx_orders_user_created (user_id, created_at)
		) ENGINE=InnoDB`,

		`CREATE TABLE IF NOT EXISTS tickets (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			order_id BIGINT UNSIGNED NOT NULL,
			journey_id BIGINT UNSIGNED NOT NULL,
			wagon_number INT UNSIGNED NOT NULL,
			seat_number INT UNSIGNED NOT NULL,
			CONSTRAINT fk_tickets_order FOREIGN KEY (order_id) REFERENCES orders (id) ON DELETE CASCADE,
			CONSTRAINT fk_tickets_journey FOREIGN KEY (journey_id) REFERENCES journeys (id),
			UNIQUE KEY uq_tickets_seat (journey_id, wagon_number, seat_number)
		) ENGINE=InnoDB`,
	}
	for i, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i, err)
		}
	}
	return nil
}
