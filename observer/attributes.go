package observer

import "go.opentelemetry.io/otel/attribute"

// Attribute keys for execution and LLM spans and metrics.
var (
	AttrLanguage    = attribute.Key("judge.language")
	AttrToken       = attribute.Key("judge.token")
	AttrStatusID    = attribute.Key("judge.status_id")
	AttrStatusDescr = attribute.Key("judge.status")

	AttrLLMProvider = attribute.Key("llm.provider")
	AttrPromptChars = attribute.Key("llm.prompt_chars")
	AttrAnswerChars = attribute.Key("llm.answer_chars")
)
