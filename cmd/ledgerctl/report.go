package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/username/networth/src/model"
	"github.com/username/networth/src/security/validation"
)

// userReport builds the markdown document printed by "show".
func userReport(u model.User) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s %s\n\n", validation.EscapeMarkdown(u.FirstName), validation.EscapeMarkdown(u.LastName))
	fmt.Fprintf(&b, "- Email: %s\n", validation.EscapeMarkdown(u.Email))
	fmt.Fprintf(&b, "- Age: %d\n", u.Age)
	fmt.Fprintf(&b, "- ID: %s\n\n", u.ID)

	if u.Portfolio == nil {
		b.WriteString("_No portfolio recorded._\n")
		return b.String()
	}

	p := u.Portfolio
	c := p.Currency
	assets, liabilities := p.Assets(), p.Liabilities()

	fmt.Fprintf(&b, "## Portfolio (%s, %s)\n\n", c, p.Timestamp.UTC().Format(time.RFC3339))
	b.WriteString("| Category | Amount |\n")
	b.WriteString("|:---|---:|\n")
	row := func(label string, a model.Amount) {
		fmt.Fprintf(&b, "| %s | %s |\n", label, c.Format(a))
	}
	row("Cash", assets.Cash)
	row("Invested", assets.Invested)
	row("Use", assets.Use)
	row("**Total assets**", assets.Total)
	row("Current liabilities", liabilities.Current)
	row("Long-term liabilities", liabilities.Long)
	row("**Total liabilities**", liabilities.Total)
	row("**Net worth**", p.NetWorth())

	if others := otherEntries(p); len(others) > 0 {
		b.WriteString("\n### Other\n\n")
		for _, o := range others {
			fmt.Fprintf(&b, "- %s: %s\n", validation.EscapeMarkdown(o.Title), c.Format(o.Amount))
		}
	}
	return b.String()
}

// otherEntries lists the titled catch-all buckets with a non-zero amount.
func otherEntries(p *model.Portfolio) []model.Other {
	var out []model.Other
	for _, o := range []model.Other{
		p.Cash.Other, p.Invested.OtherTax, p.Invested.OtherBusiness, p.Use.Other,
		p.CurrentLiabilities.Other, p.LongTermLiabilities.Other,
	} {
		if o.Title != "" && !o.Amount.IsZero() {
			out = append(out, o)
		}
	}
	return out
}
