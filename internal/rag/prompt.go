package rag

// answerInstruction is the fixed suffix appended to every prompt.
const answerInstruction = "Please provide a warm, conversational response focusing on recreational activities if asked, using the context provided."

// SystemMessage is the assistant persona sent with every generation request.
const SystemMessage = "You are a friendly and knowledgeable travel assistant. " +
	"You answer questions only about destinations, their location (state), descriptions, " +
	"tourist attractions and recreational activities during that trip, " +
	"based on the provided travel dataset. " +
	"If a query does not have an exact match in the data, provide the closest relevant information available. " +
	"Use a warm, conversational tone, as if you are chatting with someone planning a trip. " +
	"If the user asks about topics unrelated to travel or outside the dataset, respond with: " +
	"'I can only provide answers related to the travel destinations I know about, specifically tourist spots in India.'"

// BuildPrompt combines a user query and a context block into the generation
// prompt. No validation: an empty query produces a degenerate but
// well-formed prompt. Pure and deterministic.
func BuildPrompt(query, context string) string {
	return "Query: " + query + "\n\nContext:\n" + context + "\n\nAnswer: " + answerInstruction
}
