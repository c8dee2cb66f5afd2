package generator

import (
	"fmt"
	"strings"
)

// Instruction is the fixed instruction field of every training record.
const Instruction = "You are a text-to-SQL AI. Convert the question into a valid SQL query based on the schema."

const promptTemplate = `You are an expert SQL Data Analyst.
I have a SQLite database with this schema:
%s

Generate %d unique pairs of "Natural Language Questions" and "SQL Queries".

REQUIREMENTS:
1. Diversity: Include filters (WHERE), aggregations (COUNT, SUM, AVG), and JOINS.
2. Format: Return ONLY a raw JSON list of objects. No markdown.
3. Structure: [ {"question": "...", "sql": "..."}, ... ]

Generate challenging questions suitable for a business analyst.
`

func BuildPrompt(summary string, size int) string {
	return fmt.Sprintf(promptTemplate, strings.TrimRight(summary, "\n"), size)
}

// FormatInput builds the input field of a training record.
func FormatInput(question, summary string) string {
	return fmt.Sprintf("Question: %s\nSchema: %s", question, summary)
}
