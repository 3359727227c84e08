package safety

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/obioma/drugscan-api/catalog/entities"
)

// Supported assessment locales: English and Nigerian Pidgin. Anything
// else resolves to English through BCP-47 matching.
var (
	supportedLocales = []language.Tag{
		language.English,
		language.MustParse("pcm"),
	}
	localeNames   = []string{"en", "pcm"}
	localeMatcher = language.NewMatcher(supportedLocales)
)

// ResolveLocale maps an arbitrary locale string onto a supported locale.
func ResolveLocale(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return localeNames[0]
	}
	_, index, _ := localeMatcher.Match(tag)
	return localeNames[index]
}

var explanations = map[string]map[entities.RiskLevel]string{
	"en": {
		entities.RiskSafe:    "This medicine is considered safe to use at this stage of pregnancy when taken as directed.",
		entities.RiskCaution: "Use this medicine with caution at this stage of pregnancy. Talk to your doctor or pharmacist before taking it.",
		entities.RiskDanger:  "This medicine is not safe at this stage of pregnancy. Do not take it; ask your doctor for a safer option.",
	},
	"pcm": {
		entities.RiskSafe:    "This medicine dey safe for this stage of your belle if you take am as dem talk.",
		entities.RiskCaution: "Take care with this medicine for this stage of your belle. First ask doctor or chemist before you use am.",
		entities.RiskDanger:  "This medicine no good for this stage of your belle at all. No take am; ask doctor make dem give you better one.",
	},
}

var trimesterLabels = map[string]map[entities.Trimester]string{
	"en": {
		entities.TrimesterFirst:  "first trimester",
		entities.TrimesterSecond: "second trimester",
		entities.TrimesterThird:  "third trimester",
	},
	"pcm": {
		entities.TrimesterFirst:  "first three months",
		entities.TrimesterSecond: "middle three months",
		entities.TrimesterThird:  "last three months",
	},
}

var narrativeTemplates = map[string]map[entities.RiskLevel]string{
	"en": {
		entities.RiskSafe:    "Safe to use during the %s.",
		entities.RiskCaution: "Use only with medical advice during the %s.",
		entities.RiskDanger:  "Avoid completely during the %s.",
	},
	"pcm": {
		entities.RiskSafe:    "E dey safe for the %s.",
		entities.RiskCaution: "Only use am with doctor advice for the %s.",
		entities.RiskDanger:  "No use am at all for the %s.",
	},
}

var breastfeedingNotes = map[string]map[bool]string{
	"en": {
		true:  "Considered compatible with breastfeeding.",
		false: "Not recommended while breastfeeding; ask your doctor.",
	},
	"pcm": {
		true:  "E dey okay to use am while you dey breastfeed.",
		false: "No use am while you dey breastfeed; ask doctor first.",
	},
}

// narrativeFor renders the display text for one trimester's risk level.
func narrativeFor(locale string, trimester entities.Trimester, risk entities.RiskLevel) string {
	return fmt.Sprintf(narrativeTemplates[locale][risk], trimesterLabels[locale][trimester])
}
