// Package fedlex queries the Swiss Fedlex knowledge graph: it synthesizes
// SPARQL from natural language, executes it against the public endpoint,
// classifies the validity of the returned norms and fetches their full text.
package fedlex

// DefaultEndpoint is the public Fedlex SPARQL endpoint.
const DefaultEndpoint = "https://fedlex.data.admin.ch/sparqlendpoint"

// Prefixes is the canonical namespace block prepended to every query the
// executor submits. Synthesized queries must not re-declare any of these.
const Prefixes = `PREFIX rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#>
PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>
PREFIX xsd: <http://www.w3.org/2001/XMLSchema#>
PREFIX dct: <http://purl.org/dc/terms/>
PREFIX skos: <http://www.w3.org/2004/02/skos/core#>
PREFIX jolux: <http://data.legilux.public.lu/resource/ontology/jolux#>
PREFIX schema: <http://schema.org/>
`

// FormatXML is the file-type IRI of the machine-readable legal text format
// requested when resolving manifestations.
const FormatXML = "http://publications.europa.eu/resource/authority/file-type/XML"

// languageURIs maps Swiss language codes to the EU publications authority
// language IRIs used by jolux:language.
var languageURIs = map[string]string{
	"de": "http://publications.europa.eu/resource/authority/language/DEU",
	"fr": "http://publications.europa.eu/resource/authority/language/FRA",
	"it": "http://publications.europa.eu/resource/authority/language/ITA",
	"rm": "http://publications.europa.eu/resource/authority/language/RMH",
}

// LanguageNames maps Swiss language codes to display names, in the order
// used for the cross-language document links.
var LanguageNames = map[string]string{
	"de": "German",
	"fr": "French",
	"it": "Italian",
	"rm": "Romansh",
}

// languageOrder keeps link rendering deterministic.
var languageOrder = []string{"de", "fr", "it", "rm"}

// LanguageURI returns the jolux language IRI for a language code,
// defaulting to German for unknown codes.
func LanguageURI(lang string) string {
	if uri, ok := languageURIs[lang]; ok {
		return uri
	}
	return languageURIs["de"]
}
