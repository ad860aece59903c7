// Package outreach turns a finished lead into a personalized message.
// It is a pure consumer: nothing here flows back into the crawl.
package outreach

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/law-makers/leadgen/pkg/models"
)

// Generator composes outreach messages from industry and location
// heuristics. The RNG is injected so message selection is reproducible in
// tests.
type Generator struct {
	rng *rand.Rand
	log zerolog.Logger
}

func NewGenerator(rng *rand.Rand, logger zerolog.Logger) *Generator {
	return &Generator{
		rng: rng,
		log: logger.With().Str("component", "outreach").Logger(),
	}
}

// Message builds one personalized message for a lead.
func (g *Generator) Message(lead *models.Lead) models.OutreachMessage {
	industryKey := identifyIndustry(lead.CompanyName)
	industry := industryPatterns[industryKey]
	loc := identifyLocation(lead.Location)
	firstName := ceoFirstName(lead.CEOName)

	greeting := fmt.Sprintf("Hi %s team,", lead.CompanyName)
	if firstName != "" {
		greeting = fmt.Sprintf("Hi %s,", firstName)
	}

	body := fmt.Sprintf(
		"Noticed %s and wanted to reach out. %s, I imagine that %s is a constant focus.\n\n"+
			"We often speak with %s businesses facing challenges with %s. "+
			"This is an area we specialize in. For context, %s.\n\n"+
			"To give you a real-world example, %s.",
		lead.CompanyName,
		loc.hook,
		loc.challenge,
		strings.ReplaceAll(industryKey, "_", " "),
		g.pick(industry.painPoints),
		g.pick(industry.valueProps),
		g.pick(industry.caseStudies),
	)

	cta := strings.ReplaceAll(g.pick(needPayoffQuestions), "{company_name}", lead.CompanyName)

	return models.OutreachMessage{
		CompanyName:  lead.CompanyName,
		Subject:      "Idea for " + lead.CompanyName,
		Greeting:     greeting,
		Body:         body,
		CallToAction: cta,
	}
}

// Messages generates one message per lead, in order.
func (g *Generator) Messages(leads []*models.Lead) []models.OutreachMessage {
	msgs := make([]models.OutreachMessage, 0, len(leads))
	for _, l := range leads {
		msgs = append(msgs, g.Message(l))
	}
	g.log.Info().Int("messages", len(msgs)).Msg("Generated outreach messages")
	return msgs
}

func (g *Generator) pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[g.rng.Intn(len(options))]
}

// identifyIndustry matches whole-word keywords against the company name,
// falling back to the general-business pattern.
func identifyIndustry(companyName string) string {
	name := strings.ToLower(companyName)
	for _, key := range industryOrder {
		for _, kw := range industryPatterns[key].keywords {
			re := regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
			if re.MatchString(name) {
				return key
			}
		}
	}
	return generalBusiness
}

func identifyLocation(location string) locationHook {
	loc := strings.ToLower(location)
	for city, hook := range locationHooks {
		if strings.Contains(loc, city) {
			return hook
		}
	}
	return defaultLocationHook
}

func ceoFirstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
