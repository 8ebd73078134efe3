package model

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// TitleCase capitalizes each word, lowering the rest ("old GOA" -> "Old Goa").
func TitleCase(s string) string {
	return titleCaser.String(s)
}
