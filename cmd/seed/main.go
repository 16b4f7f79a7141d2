// seed crea las tablas (si no existen) y carga productos de demostración
// para desarrollo local.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración de BD que cmd/api (DATABASE_URL o DB_*).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ordenes-api/internal/domain/entity"
	"github.com/jhoicas/Ordenes-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Ordenes-api/pkg/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	unit_price NUMERIC(14,2) NOT NULL CHECK (unit_price >= 0),
	stock      NUMERIC(14,2) NOT NULL CHECK (stock >= 0),
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
	id            UUID PRIMARY KEY,
	product_id    UUID NOT NULL REFERENCES products(id),
	customer_name TEXT NOT NULL,
	quantity      NUMERIC(14,2) NOT NULL CHECK (quantity > 0),
	order_date    TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_product_id ON orders(product_id);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		fmt.Fprintf(os.Stderr, "crear esquema: %v\n", err)
		os.Exit(1)
	}

	demo := []struct {
		name  string
		price string
		stock string
	}{
		{"Aceite 20W-50", "38000", "120"},
		{"Filtro de aire", "25000", "80"},
		{"Bujía NGK", "12000", "300"},
		{"Pastillas de freno", "45000", "60"},
		{"Cadena 428H", "95000", "25"},
	}

	productRepo := postgres.NewProductRepository(pool)
	now := time.Now()
	for _, d := range demo {
		price, _ := decimal.NewFromString(d.price)
		stock, _ := decimal.NewFromString(d.stock)
		p := &entity.Product{
			ID:        uuid.New().String(),
			Name:      d.name,
			UnitPrice: price,
			Stock:     stock,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := productRepo.Create(p); err != nil {
			fmt.Fprintf(os.Stderr, "insertar %q: %v\n", d.name, err)
			os.Exit(1)
		}
		fmt.Printf("producto %q creado (stock %s)\n", p.Name, p.Stock)
	}

	fmt.Println("seed completado")
}
