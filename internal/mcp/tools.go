package mcp

import "github.com/Aman-CERP/wordrank/internal/report"

// RankWordsTool is the name of the word ranking tool.
const RankWordsTool = "rank_words"

// RankWordsInput defines the input schema for the rank_words tool.
type RankWordsInput struct {
	Text      string `json:"text" jsonschema:"the text whose words are counted"`
	Top       int    `json:"top,omitempty" jsonschema:"return only the N most frequent words, 0 for all"`
	Tokenizer string `json:"tokenizer,omitempty" jsonschema:"word splitting: alnum (letters and digits) or unicode (UAX 29 words)"`
}

// RankWordsOutput defines the output schema for the rank_words tool.
type RankWordsOutput struct {
	Tokens   int64         `json:"tokens" jsonschema:"number of words counted"`
	Distinct int           `json:"distinct" jsonschema:"number of distinct lower-cased words"`
	Words    []report.Word `json:"words" jsonschema:"words from most to least frequent"`
}

// ToolInfo describes a registered tool.
type ToolInfo struct {
	Name        string
	Description string
}

var rankWordsInfo = ToolInfo{
	Name:        RankWordsTool,
	Description: "Counts the words of a text case-insensitively and returns them ranked from most to least frequent, with their counts.",
}
