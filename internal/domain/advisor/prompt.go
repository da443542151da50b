package advisor

import (
	"fmt"
	"strings"
)

const defaultRoleLine = "You are a certified energy advisor."

var categoryGuidance = map[Category]string{
	CategoryHome: `Focus on practical actions for families:
- Efficient use of air conditioning and fans
- Taking advantage of natural light and ventilation
- Consideration of residential solar panels
- Adjusting appliance usage schedules`,
	CategoryIndustry: `Focus on industrial optimization:
- Load shifting to off-peak hours
- Predictive maintenance of HVAC systems
- Cogeneration and energy storage
- Zone-based climate control automation`,
}

const responseFormat = `**RESPONSE FORMAT (STRICTLY):**

### [Impactful Suggestion Title]

**Analysis:**
[2-3 sentences linking climate data to specific energy impact]

**Recommended Action:**
[Clear and specific description of WHAT to do and HOW to implement it]

**Estimated Savings:**
[Approximate percentage or amount in USD, with justification based on data]

**Priority:** [High/Medium/Low based on impact vs effort]

---
IMPORTANT:
- Maximum 200 words total
- Use the numerical data provided
- Be specific with measurable actions
- Don't invent data I didn't give you`

// BuildPrompt renders the deterministic advisory prompt. LocationLabel is used as given.
func BuildPrompt(roleLine string, in Input) string {
	if strings.TrimSpace(roleLine) == "" {
		roleLine = defaultRoleLine
	}
	label := strings.TrimSpace(in.LocationLabel)
	m := in.Metrics
	guidance, ok := categoryGuidance[in.Category]
	if !ok {
		guidance = categoryGuidance[CategoryHome]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s Analyze this climate data for %s for the next %d days and generate ONE energy saving suggestion.\n\n", roleLine, label, in.HorizonDays)
	fmt.Fprintf(&b, "**USER TYPE:** %s\n", strings.ToUpper(string(in.Category)))
	fmt.Fprintf(&b, "**ZONE:** %s\n", label)
	fmt.Fprintf(&b, "**PERIOD:** %d days\n\n", in.HorizonDays)
	b.WriteString("**CLIMATE DATA:**\n")
	fmt.Fprintf(&b, "- Average temperature: %.1f°C\n", m.AvgTemp)
	fmt.Fprintf(&b, "- Maximum expected temperature: %.1f°C\n", m.MaxTemp)
	fmt.Fprintf(&b, "- Minimum average temperature: %.1f°C\n", m.MinTemp)
	fmt.Fprintf(&b, "- Extreme heat days (>35°C): %d\n", m.ExtremeHeatDays)
	fmt.Fprintf(&b, "- Comfortable days (≤24°C): %d\n", m.ComfortableDays)
	fmt.Fprintf(&b, "- Cooling degree days (CDD): %.1f\n", m.CDDTotal)
	fmt.Fprintf(&b, "- Average solar radiation: %.1f MJ/m²\n", m.AvgRadiation)
	fmt.Fprintf(&b, "- Effective solar potential: %.1f MJ/m²\n", m.AvgSolarPotential)
	fmt.Fprintf(&b, "- Optimal solar days: %d\n", m.OptimalSolarDays)
	fmt.Fprintf(&b, "- High demand days: %d\n", m.HighDemandDays)
	fmt.Fprintf(&b, "- Average relative humidity: %.1f%%\n\n", m.AvgHumidity)
	b.WriteString(guidance)
	b.WriteString("\n\n")
	b.WriteString(responseFormat)
	b.WriteString("\n")
	return b.String()
}

// FallbackText is returned whenever generation fails.
func FallbackText(err error) string {
	return fmt.Sprintf("Error generating suggestion: %v\n\nBasic suggestion: Given the projected climate conditions, consider optimizing climate control usage during peak hours.", err)
}
