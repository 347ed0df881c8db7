// seed genera un script SQL con datos de demostración: un usuario admin
// suscrito a alertas, un técnico, y un catálogo pequeño de reactivos con
// lotes en distintos estados de stock y caducidad.
//
// Uso: go run ./cmd/seed [ruta/salida.sql]
// Por defecto escribe seed_demo.sql en el directorio actual.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/LabStock-api/pkg/normalize"
)

type seedReagent struct {
	name      string
	reference string
	barcode   string
	unit      string
	unitSize  decimal.Decimal
	minimum   int
	location  string
	lots      []seedLot
}

type seedLot struct {
	number   string
	quantity int
	daysOut  *int // días hasta caducar desde hoy; nil = sin caducidad
}

func days(n int) *int { return &n }

func main() {
	outPath := "seed_demo.sql"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	var b strings.Builder
	b.WriteString("-- Datos de demostración LabStock. Generado por cmd/seed.\n")
	b.WriteString("BEGIN;\n\n")

	writeUsers(&b)
	writeInventory(&b)

	b.WriteString("COMMIT;\n")

	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir %s: %v\n", outPath, err)
		os.Exit(1)
	}
	fmt.Printf("Script generado: %s\n", outPath)
}

func writeUsers(b *strings.Builder) {
	users := []struct {
		email, password, name, role string
		receiveAlerts               bool
	}{
		{"admin@labstock.local", "admin12345", "Admin", "admin", true},
		{"tecnico@labstock.local", "tecnico12345", "Técnico de laboratorio", "tecnico", false},
	}
	b.WriteString("-- Usuarios (password = parte local del email + '12345')\n")
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bcrypt: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(b,
			"INSERT INTO users (id, email, password_hash, name, role, status, receive_alerts, created_at, updated_at)\n"+
				"VALUES ('%s', '%s', '%s', '%s', '%s', 'active', %t, now(), now());\n",
			uuid.New(), u.email, string(hash), sqlEscape(u.name), u.role, u.receiveAlerts)
	}
	b.WriteString("\n")
}

func writeInventory(b *strings.Builder) {
	reagents := []seedReagent{
		{
			name: "Etanol absoluto", reference: "ET-0500", barcode: "8412345000017",
			unit: "mL", unitSize: decimal.NewFromInt(500), minimum: 4, location: "Armario inflamables",
			lots: []seedLot{
				{number: "L2406-A", quantity: 6, daysOut: days(180)},
			},
		},
		{
			name: "Ácido clorhídrico 37%", reference: "HCL-1000", barcode: "8412345000024",
			unit: "mL", unitSize: decimal.NewFromInt(1000), minimum: 2, location: "Armario ácidos",
			lots: []seedLot{
				{number: "L2312-B", quantity: 1, daysOut: days(20)},
			},
		},
		{
			name: "Tampón fosfato pH 7.0", reference: "PBS-0250", barcode: "",
			unit: "mL", unitSize: decimal.NewFromFloat(250), minimum: 3, location: "Nevera 2",
			lots: []seedLot{
				{number: "L2401-C", quantity: 2, daysOut: days(-5)},
				{number: "L2405-D", quantity: 3, daysOut: days(90)},
			},
		},
		{
			name: "Glucosa anhidra", reference: "GLU-0500", barcode: "8412345000048",
			unit: "g", unitSize: decimal.NewFromInt(500), minimum: 1, location: "Estante B3",
			lots: []seedLot{},
		},
	}

	b.WriteString("-- Reactivos y lotes\n")
	today := time.Now()
	for _, r := range reagents {
		reagentID := uuid.New().String()
		total := 0
		for _, l := range r.lots {
			total += l.quantity
		}
		barcode := "NULL"
		if r.barcode != "" {
			barcode = "'" + r.barcode + "'"
		}
		fmt.Fprintf(b,
			"INSERT INTO reagents (id, name, search_name, reference, barcode, unit, unit_size, total_quantity, minimum_stock, location, active, created_at, updated_at)\n"+
				"VALUES ('%s', '%s', '%s', '%s', %s, '%s', %s, %d, %d, '%s', true, now(), now());\n",
			reagentID, sqlEscape(r.name), sqlEscape(normalize.SearchKey(r.name)), r.reference,
			barcode, r.unit, r.unitSize.String(), total, r.minimum, sqlEscape(r.location))
		for _, l := range r.lots {
			expiry := "NULL"
			if l.daysOut != nil {
				expiry = "'" + today.AddDate(0, 0, *l.daysOut).Format("2006-01-02") + "'"
			}
			fmt.Fprintf(b,
				"INSERT INTO lots (id, reagent_id, lot_number, expiry_date, quantity, active, created_at, updated_at)\n"+
					"VALUES ('%s', '%s', '%s', %s, %d, true, now(), now());\n",
				uuid.New(), reagentID, l.number, expiry, l.quantity)
		}
		b.WriteString("\n")
	}
}

func sqlEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
