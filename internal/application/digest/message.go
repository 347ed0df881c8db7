package digest

import (
	"fmt"
	"html"
	"strings"

	"time"

	"github.com/jhoicas/LabStock-api/internal/domain/alerts"
)

const dateLayout = "2006-01-02"

// buildSubject arma el asunto con plural correcto.
func buildSubject(totalAlerts int) string {
	if totalAlerts == 1 {
		return "LabStock: 1 elemento del inventario requiere atención"
	}
	return fmt.Sprintf("LabStock: %d elementos del inventario requieren atención", totalAlerts)
}

func renderGreeting(name string) string {
	return fmt.Sprintf("<p>Hola %s,</p><p>Resumen diario de alertas del inventario:</p>", html.EscapeString(name))
}

func textGreeting(name string) string {
	return fmt.Sprintf("Hola %s,\n\nResumen diario de alertas del inventario:\n\n", name)
}

// renderBody compone el cuerpo compartido del digest (HTML y texto plano) a
// partir de la partición ya calculada. Se genera una sola vez por corrida.
func renderBody(part alerts.AlertPartition, today time.Time) (htmlBody, textBody string) {
	var h, t strings.Builder

	if len(part.OutOfStock) > 0 {
		h.WriteString("<h3>Sin stock</h3><ul>")
		t.WriteString("SIN STOCK\n")
		for _, r := range part.OutOfStock {
			h.WriteString(fmt.Sprintf("<li>%s (%s)</li>", html.EscapeString(r.Name), html.EscapeString(r.Reference)))
			t.WriteString(fmt.Sprintf("  - %s (%s)\n", r.Name, r.Reference))
		}
		h.WriteString("</ul>")
		t.WriteString("\n")
	}

	if len(part.LowStock) > 0 {
		h.WriteString("<h3>Stock bajo</h3><ul>")
		t.WriteString("STOCK BAJO\n")
		for _, r := range part.LowStock {
			h.WriteString(fmt.Sprintf("<li>%s (%s): %d envases, mínimo %d</li>",
				html.EscapeString(r.Name), html.EscapeString(r.Reference), r.TotalQuantity, r.MinimumStock))
			t.WriteString(fmt.Sprintf("  - %s (%s): %d envases, mínimo %d\n", r.Name, r.Reference, r.TotalQuantity, r.MinimumStock))
		}
		h.WriteString("</ul>")
		t.WriteString("\n")
	}

	if len(part.ExpiredLots) > 0 {
		h.WriteString("<h3>Lotes caducados</h3><ul>")
		t.WriteString("LOTES CADUCADOS\n")
		for _, l := range part.ExpiredLots {
			h.WriteString(fmt.Sprintf("<li>%s — lote %s, caducó el %s</li>",
				html.EscapeString(l.ReagentName), html.EscapeString(l.LotNumber), l.ExpiryDate.Format(dateLayout)))
			t.WriteString(fmt.Sprintf("  - %s — lote %s, caducó el %s\n", l.ReagentName, l.LotNumber, l.ExpiryDate.Format(dateLayout)))
		}
		h.WriteString("</ul>")
		t.WriteString("\n")
	}

	if len(part.ExpiringSoon) > 0 {
		h.WriteString("<h3>Caducan pronto</h3><ul>")
		t.WriteString("CADUCAN PRONTO\n")
		for _, l := range part.ExpiringSoon {
			days := ""
			if cls := alerts.ClassifyExpiry(l.ExpiryDate, today); cls.DaysUntil != nil {
				if *cls.DaysUntil == 1 {
					days = " (1 día)"
				} else {
					days = fmt.Sprintf(" (%d días)", *cls.DaysUntil)
				}
			}
			h.WriteString(fmt.Sprintf("<li>%s — lote %s, caduca el %s%s</li>",
				html.EscapeString(l.ReagentName), html.EscapeString(l.LotNumber), l.ExpiryDate.Format(dateLayout), days))
			t.WriteString(fmt.Sprintf("  - %s — lote %s, caduca el %s%s\n", l.ReagentName, l.LotNumber, l.ExpiryDate.Format(dateLayout), days))
		}
		h.WriteString("</ul>")
		t.WriteString("\n")
	}

	h.WriteString("<p>— LabStock</p>")
	t.WriteString("-- LabStock\n")
	return h.String(), t.String()
}
