package gemini

// Input text beyond this many characters is not sent to the model.
const maxPromptChars = 10000

func buildAnalysisPrompt(text string) string {
	snippet := text
	if len(snippet) > maxPromptChars {
		snippet = snippet[:maxPromptChars]
	}

	return `Analyze the following document and provide a comprehensive analysis in JSON format. Include:
1. A concise summary (2-3 sentences)
2. Key fields extracted from the document (dates, amounts, parties, etc.)
3. Named entities (people, organizations, locations) with confidence scores
4. Important keywords with relevance scores
5. Main topics with confidence scores
6. Potential risks with severity levels and confidence scores
7. Action items with priorities
8. Compliance suggestions with priorities

Document text:
` + snippet + `

Respond ONLY with valid JSON in this exact format:
{
  "summary": "string",
  "key_fields": {"field_name": "value"},
  "named_entities": [{"text": "string", "type": "PERSON|ORG|LOCATION|DATE|MONEY", "confidence": 0.0-1.0}],
  "keywords": [{"text": "string", "relevance": 0.0-1.0}],
  "topics": [{"name": "string", "confidence": 0.0-1.0}],
  "risks": [{"description": "string", "severity": "low|medium|high|critical", "category": "string", "confidence": 0.0-1.0}],
  "action_items": [{"description": "string", "priority": "low|medium|high"}],
  "compliance_suggestions": [{"description": "string", "regulation": "string", "priority": "low|medium|high"}]
}`
}
