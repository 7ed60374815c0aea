package fedlex

// schemaInfo is the JOLux schema primer given to the model when
// synthesizing SPARQL. It describes the classes, properties and IRIs the
// generated query is allowed to use and the query pattern to follow.
const schemaInfo = `FEDLEX DATABASE SCHEMA (JOLux Ontology):

CRITICAL CLASSES (use these):
- jolux:ConsolidationAbstract: SR entries (systematic collection) - USE THIS for searching laws
- jolux:Consolidation: Specific versions of SR entries (linked via jolux:isMemberOf)
- jolux:Expression: Language-specific versions (German, French, Italian, Romansh)
- jolux:Manifestation: File formats (XML, PDF, HTML, docx, doc)
- jolux:Act: AS entries (official gazette)

CRITICAL PROPERTIES FOR SEARCH:
- jolux:isMemberOf: Links Consolidation to ConsolidationAbstract (REQUIRED for document fetching)
- jolux:isRealizedBy: Links Work to Expression (language versions)
- jolux:isEmbodiedBy: Links Expression to Manifestation (file formats)
- jolux:isExemplifiedBy: Links Manifestation to download URL
- jolux:title: Title of the document (on Expression level, MULTILINGUAL)
- jolux:language: Language URI (DEU, FRA, ITA, RMH)
- jolux:format: File format URI (XML, PDF, HTML, etc.)
- jolux:dateDocument: Date of the document
- jolux:dateApplicability: Date from which a law becomes applicable
- jolux:dateEndApplicability: Last day on which a law remains applicable
- jolux:classifiedByTaxonomyEntry: Links to taxonomy for SR number
- skos:notation: SR number (on TaxonomyEntry)
- dct:abstract: Abstract/summary (optional, not always present)

Language URIs (ALWAYS use these for filtering):
- German: <http://publications.europa.eu/resource/authority/language/DEU>
- French: <http://publications.europa.eu/resource/authority/language/FRA>
- Italian: <http://publications.europa.eu/resource/authority/language/ITA>
- Romansh: <http://publications.europa.eu/resource/authority/language/RMH>

QUERY PATTERN (ALWAYS follow this structure):
1. Start with: ?work a jolux:ConsolidationAbstract
2. Get consolidation: ?consolidation jolux:isMemberOf ?work
3. Get language versions: ?work jolux:isRealizedBy ?expression
4. Filter language: ?expression jolux:language <language_uri>
5. Get title: ?expression jolux:title ?title
6. Get applicability dates: ?consolidation jolux:dateApplicability ?dateApplicability
   and OPTIONAL dateEndApplicability
7. Optional SR number via jolux:classifiedByTaxonomyEntry / skos:notation
8. Search in title: FILTER(CONTAINS(LCASE(?title), "keyword"))

IMPORTANT NOTES:
- jolux:title is on Expression level, NOT on Work level
- ALWAYS include ?consolidation via jolux:isMemberOf for document fetching
- ALWAYS include dateApplicability and dateEndApplicability for filtering applicable laws
- Search keywords in MULTIPLE languages for broader results
- Use OPTIONAL for fields that might not exist (abstract, SR number, end dates)
- Search more broadly than the literal question words; the question's exact
  words might not appear in the title of the law`

// synthesisExamples are worked question/query pairs shown to the model so
// the generated query sticks to the expected shape.
const synthesisExamples = `EXAMPLES:

Question: "Find currently applicable laws about asylum"
Query:
SELECT DISTINCT ?work ?consolidation ?title ?sr_number ?date ?dateApplicability ?dateEndApplicability WHERE {
    ?work a jolux:ConsolidationAbstract ;
          jolux:dateDocument ?date ;
          jolux:isRealizedBy ?expression .

    ?consolidation jolux:isMemberOf ?work ;
                   jolux:dateApplicability ?dateApplicability .

    ?expression jolux:language <http://publications.europa.eu/resource/authority/language/DEU> ;
                jolux:title ?title .

    OPTIONAL {
        ?work jolux:classifiedByTaxonomyEntry ?taxonomy .
        ?taxonomy skos:notation ?sr_number .
    }

    OPTIONAL { ?consolidation jolux:dateEndApplicability ?dateEndApplicability }

    FILTER(
        CONTAINS(LCASE(?title), "asyl") ||
        CONTAINS(LCASE(?title), "flüchtling")
    )
}
ORDER BY DESC(?date)
LIMIT 10

Question: "Find recent ordinances about children"
Query:
SELECT DISTINCT ?work ?consolidation ?title ?sr_number ?date ?dateApplicability ?dateEndApplicability WHERE {
    ?work a jolux:ConsolidationAbstract ;
          jolux:dateDocument ?date ;
          jolux:isRealizedBy ?expression .

    ?consolidation jolux:isMemberOf ?work ;
                   jolux:dateApplicability ?dateApplicability .

    ?expression jolux:language <http://publications.europa.eu/resource/authority/language/DEU> ;
                jolux:title ?title .

    OPTIONAL {
        ?work jolux:classifiedByTaxonomyEntry ?taxonomy .
        ?taxonomy skos:notation ?sr_number .
    }

    OPTIONAL { ?consolidation jolux:dateEndApplicability ?dateEndApplicability }

    FILTER(
        CONTAINS(LCASE(?title), "kind") ||
        CONTAINS(LCASE(?title), "jugend") ||
        CONTAINS(LCASE(?title), "minderjährig")
    )
}
ORDER BY DESC(?date)
LIMIT 10`

// synthesisRules are the hard constraints the model must follow when
// generating a query.
const synthesisRules = `CRITICAL RULES:
1. ALWAYS use jolux:ConsolidationAbstract as the main class for SR entries
2. ALWAYS include jolux:dateApplicability and jolux:dateEndApplicability
3. ALWAYS include the consolidation URI via jolux:isMemberOf to enable document fetching
4. Search across multiple fields (jolux:title, dct:abstract, skos:notation) for broader results
5. Use jolux:isRealizedBy to get language-specific Expressions
6. Filter by language using the language URIs above
7. Use CONTAINS with LCASE for case-insensitive text searches
8. Always include LIMIT (max 10-15 results)
9. Use ORDER BY DESC(?date) when jolux:dateDocument is available
10. Return ONLY the SPARQL query without prefixes (they are added automatically)
11. Make the query as broad as possible so that all relevant laws are found`
