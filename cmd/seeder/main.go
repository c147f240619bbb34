// Carga administrativa de datos: migraciones y catálogo de proyectos.
// Los proyectos solo cambian por esta vía, nunca por acción del usuario.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	godotenv.Load()

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	migrations, err := filepath.Glob("migrations/*.sql")
	if err != nil {
		log.Fatal(err)
	}
	sort.Strings(migrations)

	files := append(migrations, "seed/projects.sql")

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			log.Fatalf("no se pudo leer %s: %v", file, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			log.Fatalf("falla ejecutando %s: %v", file, err)
		}
		fmt.Printf("Aplicado: %s\n", file)
	}

	fmt.Println("✅ Base de datos lista")
}
