package translator

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// AutoDetect asks the endpoint to detect the source language.
const AutoDetect = "auto"

// ParseSourceLanguage validates a source language code. "auto" is accepted.
func ParseSourceLanguage(code string) (string, error) {
	code = strings.TrimSpace(code)
	if strings.EqualFold(code, AutoDetect) {
		return AutoDetect, nil
	}
	return parseLanguage(code)
}

// ParseTargetLanguage validates a target language code.
func ParseTargetLanguage(code string) (string, error) {
	code = strings.TrimSpace(code)
	if strings.EqualFold(code, AutoDetect) {
		return "", fmt.Errorf("%q is only valid as a source language", code)
	}
	return parseLanguage(code)
}

// parseLanguage checks the code is a well-formed BCP 47 tag and returns it
// unchanged, since the endpoint expects codes such as "zh-CN" verbatim.
func parseLanguage(code string) (string, error) {
	if code == "" {
		return "", errors.New("language code is empty")
	}
	if _, err := language.Parse(code); err != nil {
		return "", fmt.Errorf("invalid language code %q: %w", code, err)
	}
	return code, nil
}
