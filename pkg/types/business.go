// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Language selects the wording of prompt templates. French is the primary
// locale; English is the secondary one.
type Language string

const (
	LanguageFrench  Language = "French"
	LanguageEnglish Language = "English"
)

// ParseLanguage accepts "French"/"fr" or "English"/"en" in any case.
// The empty string resolves to French.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "french", "fr", "français", "francais":
		return LanguageFrench, nil
	case "english", "en":
		return LanguageEnglish, nil
	default:
		return "", fmt.Errorf("%w: unsupported language %q (use French or English)", ErrConfiguration, s)
	}
}

// BusinessParams are the named business-context values interpolated into
// prompt templates (industry, customer, description, year, region, ...).
type BusinessParams map[string]string

// Well-known parameter names.
const (
	ParamCompany     = "company"
	ParamCustomer    = "customer"
	ParamIndustry    = "industry"
	ParamDescription = "description"
	ParamProblem     = "problem"
	ParamSolution    = "solution"
	ParamYear        = "year"
	ParamRegion      = "region"
	ParamLanguage    = "language"
	ParamCount       = "count"
	ParamCOGS        = "cogs_percentage"
	ParamExpenses    = "expenses_percentage"
)

// With returns a copy of p with key set to value. p is never modified.
func (p BusinessParams) With(key, value string) BusinessParams {
	out := make(BusinessParams, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	out[key] = value
	return out
}

// Require returns ErrConfiguration naming every key that is absent or blank.
func (p BusinessParams) Require(keys ...string) error {
	var missing []string
	for _, k := range keys {
		if strings.TrimSpace(p[k]) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required parameter(s): %s", ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}

// Year parses the year parameter; 0 when unset.
func (p BusinessParams) Year() (int, error) {
	s := strings.TrimSpace(p[ParamYear])
	if s == "" {
		return 0, nil
	}
	y, err := strconv.Atoi(s)
	if err != nil || y < 2000 || y > 2100 {
		return 0, fmt.Errorf("%w: year %q must be between 2000 and 2100", ErrConfiguration, s)
	}
	return y, nil
}
