package federation

import (
	"fmt"
	"strings"

	"github.com/piarosebelledelapaz/pro-botno/internal/models"
)

// routerPrompt instructs the model to pick a data source for the question.
// The model must answer with a single token: RAG (general documents only)
// or BOTH (documents plus Swiss federal legislation).
func routerPrompt(question string) string {
	var b strings.Builder

	b.WriteString("Analyze the following legal question and determine the best data source for pro bono lawyers at UNHCR.\n\n")
	b.WriteString("DATA SOURCES:\n")
	b.WriteString("1. \"RAG\" - General legal document database ONLY (European and international legal documents)\n")
	b.WriteString("   Use when: questions EXCLUSIVELY about general legal principles, international refugee law,\n")
	b.WriteString("   European directives, or other countries (explicitly NOT Switzerland).\n")
	b.WriteString("   Examples: \"What does the Geneva Convention say about refugees?\",\n")
	b.WriteString("   \"European asylum directives\", \"Refugee rights in Germany or France\".\n\n")
	b.WriteString("2. \"BOTH\" - Combined search across general documents AND Swiss federal legislation.\n")
	b.WriteString("   Use when: questions involve Switzerland in ANY way, or benefit from Swiss context.\n")
	b.WriteString("   This is the DEFAULT for Swiss-related questions.\n")
	b.WriteString("   Examples: ANY mention of Swiss, Switzerland or Swiss locations; asylum questions\n")
	b.WriteString("   in a Swiss context; specific Swiss laws (Asylgesetz, etc.); comparative questions\n")
	b.WriteString("   involving Switzerland; uncertain or ambiguous Swiss relevance.\n\n")
	b.WriteString("DECISION GUIDELINES:\n")
	b.WriteString("- Swiss-related questions (explicit or implicit) -> BOTH\n")
	b.WriteString("- General international law with ZERO Swiss connection -> RAG\n")
	b.WriteString("- European law that might apply to Switzerland -> BOTH\n")
	b.WriteString("- Uncertain or ambiguous -> BOTH (default to comprehensive)\n\n")
	b.WriteString("Question: " + question + "\n\n")
	b.WriteString("Respond with ONLY one word: RAG or BOTH\n")

	return b.String()
}

// documentsPrompt builds the synthesis prompt for the documents-only route.
func documentsPrompt(passageContext, question string) string {
	var b strings.Builder

	b.WriteString("You are an expert paralegal for pro bono lawyers at UNHCR working with refugees.\n\n")
	b.WriteString("Provide clear, concise and actionable legal guidance by analyzing the provided documents.\n")
	b.WriteString("Think step by step and do not rush the answer.\n\n")
	b.WriteString("ANALYSIS FRAMEWORK:\n")
	b.WriteString("1. Immediate Rights: what rights does the refugee currently have based on these documents?\n")
	b.WriteString("2. Complications: what laws or regulations could complicate the situation?\n")
	b.WriteString("3. Procedures: what restrictions or procedures could delay or streamline the case?\n")
	b.WriteString("4. Alternative Jurisdictions: if not covered here, where else might this case be viable?\n\n")
	b.WriteString("CITATION REQUIREMENTS:\n")
	b.WriteString("- ALWAYS cite specific articles, sections, and document sources.\n")
	b.WriteString("- Format: \"According to [Article X, Section Y of Document Z]...\".\n")
	b.WriteString("- Include exact quotes when relevant.\n")
	b.WriteString("- If the answer is not in the documents, state this explicitly.\n")
	b.WriteString("- Do NOT use outside knowledge; only use the provided documents.\n\n")
	b.WriteString("PROVIDED DOCUMENTS:\n<context>\n")
	b.WriteString(passageContext)
	b.WriteString("\n</context>\n\n")
	b.WriteString("LAWYER'S QUESTION:\n" + question + "\n\n")
	b.WriteString("YOUR ANALYSIS:\n")

	return b.String()
}

// combinedPrompt builds the synthesis prompt for the federated route,
// feeding both the semantic passages and the Fedlex bundle rendering.
func combinedPrompt(passageContext, bundleReport, question string) string {
	var b strings.Builder

	b.WriteString("You are an expert legal assistant for pro bono lawyers at UNHCR with access to:\n")
	b.WriteString("1. General Legal Documents: European and international legal documents.\n")
	b.WriteString("2. Swiss Federal Legislation: official Swiss laws from Fedlex.\n\n")
	b.WriteString("The general documents were used to guide the search in Swiss federal legislation;\n")
	b.WriteString("use insights from them to interpret and apply the specific Swiss laws.\n\n")
	b.WriteString("ANALYSIS FRAMEWORK:\n")
	b.WriteString("1. Swiss Legal Framework: what Swiss laws apply? Cite specific articles from the legal text.\n")
	b.WriteString("2. International/European Context: what general legal principles are relevant?\n")
	b.WriteString("3. Compliance and Conflicts: how does Swiss law align with or differ from international standards?\n")
	b.WriteString("4. Immediate Rights: what rights does the refugee have under Swiss vs. international law?\n")
	b.WriteString("5. Practical Guidance: what actions should the lawyer take?\n\n")
	b.WriteString("CITATION REQUIREMENTS:\n")
	b.WriteString("- For Swiss laws: cite exact articles with SR numbers and direct quotes from the fetched text.\n")
	b.WriteString("- For general documents: cite specific articles, sections, and document sources.\n")
	b.WriteString("- Clearly label which source each citation comes from.\n")
	b.WriteString("- Clearly distinguish currently applicable from expired legislation.\n")
	b.WriteString("- If information is missing from either source, state this explicitly.\n\n")
	b.WriteString("GENERAL LEGAL DOCUMENTS:\n<rag_context>\n")
	b.WriteString(passageContext)
	b.WriteString("\n</rag_context>\n\n")
	b.WriteString("SWISS FEDERAL LEGISLATION:\n<sparql_results>\n")
	b.WriteString(bundleReport)
	b.WriteString("\n</sparql_results>\n\n")
	b.WriteString("LAWYER'S QUESTION:\n" + question + "\n\n")
	b.WriteString("YOUR COMPREHENSIVE ANALYSIS:\n")

	return b.String()
}

// FormatPassages renders retrieved passages as prompt context.
func FormatPassages(passages []models.RetrievedPassage) string {
	if len(passages) == 0 {
		return "No documents retrieved."
	}

	parts := make([]string, 0, len(passages))
	for i, p := range passages {
		parts = append(parts, fmt.Sprintf("--- Document %d (Source: %s) ---\n%s", i+1, p.Source, p.Text))
	}
	return strings.Join(parts, "\n\n")
}
