// Package catalogfile lee el catálogo mínimo (productos, locales, usuarios) desde un archivo JSON.
// Sirve para poblar el adaptador en memoria y para generar el SQL de seed de PostgreSQL.
package catalogfile

import (
	"fmt"
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// Catalog contenido del archivo.
type Catalog struct {
	Products  []Product  `json:"products"`
	Locations []Location `json:"locations"`
	Users     []User     `json:"users"`
}

// Product fila de producto. Active por defecto true.
type Product struct {
	ID       string `json:"id"`
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	MinStock int    `json:"min_stock"`
	Active   *bool  `json:"active,omitempty"`
}

// Location fila de local.
type Location struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Sellable bool   `json:"sellable"`
	Active   *bool  `json:"active,omitempty"`
}

// User fila de usuario.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Active *bool  `json:"active,omitempty"`
}

// Sink recibe las entidades del catálogo (memory.Store lo implementa).
type Sink interface {
	PutProduct(p entity.Product)
	PutLocation(l entity.Location)
	PutUser(u entity.User)
}

// Load abre y decodifica path.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir catálogo: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode lee y valida un catálogo.
func Decode(r io.Reader) (*Catalog, error) {
	var c Catalog
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("decodificar catálogo: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	seen := map[string]bool{}
	check := func(kind, id, name string) error {
		if strings.TrimSpace(id) == "" || strings.TrimSpace(name) == "" {
			return fmt.Errorf("catálogo: %s sin id o nombre", kind)
		}
		key := kind + "/" + id
		if seen[key] {
			return fmt.Errorf("catálogo: %s %s duplicado", kind, id)
		}
		seen[key] = true
		return nil
	}
	skus := map[string]bool{}
	for _, p := range c.Products {
		if err := check("producto", p.ID, p.Name); err != nil {
			return err
		}
		if p.SKU == "" || skus[p.SKU] {
			return fmt.Errorf("catálogo: sku vacío o duplicado en producto %s", p.ID)
		}
		skus[p.SKU] = true
		if p.MinStock < 0 {
			return fmt.Errorf("catálogo: min_stock negativo en producto %s", p.ID)
		}
	}
	for _, l := range c.Locations {
		if err := check("local", l.ID, l.Name); err != nil {
			return err
		}
	}
	for _, u := range c.Users {
		if err := check("usuario", u.ID, u.Name); err != nil {
			return err
		}
	}
	return nil
}

// ApplyTo vuelca el catálogo en sink.
func (c *Catalog) ApplyTo(sink Sink) {
	for _, p := range c.Products {
		sink.PutProduct(entity.Product{ID: p.ID, SKU: p.SKU, Name: p.Name, MinStock: p.MinStock, Active: active(p.Active)})
	}
	for _, l := range c.Locations {
		sink.PutLocation(entity.Location{ID: l.ID, Name: l.Name, Sellable: l.Sellable, Active: active(l.Active)})
	}
	for _, u := range c.Users {
		sink.PutUser(entity.User{ID: u.ID, Name: u.Name, Email: u.Email, Active: active(u.Active)})
	}
}

// WriteSQL escribe upserts idempotentes para las tablas products, locations y users.
func (c *Catalog) WriteSQL(w io.Writer) error {
	var b strings.Builder
	b.WriteString("-- Catálogo mínimo del ledger\n-- Generado por cmd/seed_catalog\n\n")

	if len(c.Products) > 0 {
		b.WriteString("INSERT INTO products (id, sku, name, min_stock, active) VALUES\n")
		for i, p := range c.Products {
			fmt.Fprintf(&b, "  ('%s', '%s', '%s', %d, %t)%s\n",
				escapeSQL(p.ID), escapeSQL(p.SKU), escapeSQL(p.Name), p.MinStock, active(p.Active), sep(i, len(c.Products)))
		}
		b.WriteString("ON CONFLICT (id) DO UPDATE SET sku = EXCLUDED.sku, name = EXCLUDED.name,\n" +
			"  min_stock = EXCLUDED.min_stock, active = EXCLUDED.active;\n\n")
	}
	if len(c.Locations) > 0 {
		b.WriteString("INSERT INTO locations (id, name, sellable, active) VALUES\n")
		for i, l := range c.Locations {
			fmt.Fprintf(&b, "  ('%s', '%s', %t, %t)%s\n",
				escapeSQL(l.ID), escapeSQL(l.Name), l.Sellable, active(l.Active), sep(i, len(c.Locations)))
		}
		b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, sellable = EXCLUDED.sellable,\n" +
			"  active = EXCLUDED.active;\n\n")
	}
	if len(c.Users) > 0 {
		b.WriteString("INSERT INTO users (id, name, email, active) VALUES\n")
		for i, u := range c.Users {
			fmt.Fprintf(&b, "  ('%s', '%s', '%s', %t)%s\n",
				escapeSQL(u.ID), escapeSQL(u.Name), escapeSQL(u.Email), active(u.Active), sep(i, len(c.Users)))
		}
		b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, email = EXCLUDED.email,\n" +
			"  active = EXCLUDED.active;\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func active(p *bool) bool { return p == nil || *p }

func sep(i, n int) string {
	if i < n-1 {
		return ","
	}
	return ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
