// seed_catalog genera el script SQL que puebla products, locations y users
// a partir de un catálogo JSON (el mismo formato que CATALOG_FILE en modo memory).
//
// Uso: go run ./cmd/seed_catalog [ruta/catalog.json]
// Por defecto busca catalog.json en el directorio actual.
// Escribe: internal/infrastructure/postgres/seed_catalog.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/stockledger-api/internal/infrastructure/catalogfile"
)

func main() {
	path := "catalog.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	cat, err := catalogfile.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := cat.WriteSQL(out); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generado %s: %d productos, %d locales, %d usuarios\n",
		outPath, len(cat.Products), len(cat.Locations), len(cat.Users))
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
