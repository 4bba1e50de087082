package tui

import (
	"strings"

	"github.com/MKhiriev/osteo-vault/models"
)

const uiDivider = "──────────────────────────────────────────────────────"

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		lines := strings.Split(data, "\n")
		for _, line := range lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString("  ")
	b.WriteString(helpStyle.Render("ctrl+c: выход"))

	return b.String()
}

// renderBanner returns the warning lines shown above every page.
func renderBanner(status models.LockStatus) string {
	var b strings.Builder
	if status.Degraded {
		b.WriteString(bannerStyle.Render("ВНИМАНИЕ: локальное хранилище недоступно, записи не сохранятся после выхода"))
		b.WriteString("\n")
		if status.DegradedReason != "" {
			b.WriteString(helpStyle.Render(fitText(status.DegradedReason, 100)))
			b.WriteString("\n")
		}
	}
	if status.DemoMode {
		b.WriteString(bannerStyle.Render("ДЕМО-РЕЖИМ: данные не сохраняются"))
		b.WriteString("\n")
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	return b.String()
}

func renderError(msg string) string {
	if msg == "" {
		return ""
	}
	return "\n" + errorStyle.Render("Ошибка: "+msg) + "\n"
}

func destinationName(d models.Destination) string {
	if d == models.LocalEncrypted {
		return "локально (шифр.)"
	}
	return "сервер"
}

func fitText(v string, max int) string {
	r := []rune(v)
	if max <= 0 || len(r) <= max {
		return v
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
