// Package translator is a small client for Google's keyless translate
// endpoint, with a bounded parallel batch helper.
//
//	text, err := translator.Translate("Hello", "auto", "vi")
//
//	results := translator.TranslateAll([]string{"Good morning", "Go is great"}, "auto", "vi")
//	for _, r := range results {
//		fmt.Println(r.Text, r.Err)
//	}
package translator

import "context"

var defaultClient = NewClient()

// Translate translates a single string with the default client.
func Translate(text, from, to string) (string, error) {
	return defaultClient.Translate(context.Background(), text, from, to)
}

// TranslateAll translates texts with the default client and 4 workers.
func TranslateAll(texts []string, from, to string) []Result {
	return defaultClient.TranslateAllWithWorkers(context.Background(), texts, from, to, DefaultWorkers)
}

// TranslateAllWithWorkers translates texts with the default client and the
// given number of workers.
func TranslateAllWithWorkers(texts []string, from, to string, workers int) []Result {
	return defaultClient.TranslateAllWithWorkers(context.Background(), texts, from, to, workers)
}
