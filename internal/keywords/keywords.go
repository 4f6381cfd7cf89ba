// Package keywords lists the SQL words with special meaning to the parser.
//
// Reserved words can never be used as bare column or table names.
// Unreserved words are accepted as identifiers but still get quoted on
// output, so that rendered text never depends on which context a word may
// be read in.
package keywords

// Category classifies a keyword.
type Category uint8

const (
	None Category = iota
	Unreserved
	Reserved
)

var table = map[string]Category{
	"all":          Reserved,
	"and":          Reserved,
	"as":           Reserved,
	"asc":          Reserved,
	"between":      Reserved,
	"case":         Reserved,
	"cast":         Reserved,
	"collate":      Reserved,
	"create":       Reserved,
	"cross":        Reserved,
	"default":      Reserved,
	"desc":         Reserved,
	"distinct":     Reserved,
	"else":         Reserved,
	"end":          Reserved,
	"except":       Reserved,
	"false":        Reserved,
	"from":         Reserved,
	"full":         Reserved,
	"group":        Reserved,
	"having":       Reserved,
	"ilike":        Reserved,
	"in":           Reserved,
	"inner":        Reserved,
	"intersect":    Reserved,
	"into":         Reserved,
	"is":           Reserved,
	"join":         Reserved,
	"left":         Reserved,
	"like":         Reserved,
	"limit":        Reserved,
	"not":          Reserved,
	"null":         Reserved,
	"offset":       Reserved,
	"on":           Reserved,
	"only":         Reserved,
	"operator":     Reserved,
	"or":           Reserved,
	"order":        Reserved,
	"outer":        Reserved,
	"returning":    Reserved,
	"right":        Reserved,
	"select":       Reserved,
	"set":          Reserved,
	"table":        Reserved,
	"then":         Reserved,
	"true":         Reserved,
	"union":        Reserved,
	"unique":       Reserved,
	"user":         Reserved,
	"using":        Reserved,
	"values":       Reserved,
	"when":         Reserved,
	"where":        Reserved,
	"with":         Reserved,
	"bigint":       Unreserved,
	"boolean":      Unreserved,
	"by":           Unreserved,
	"cache":        Unreserved,
	"char":         Unreserved,
	"character":    Unreserved,
	"concurrently": Unreserved,
	"cycle":        Unreserved,
	"decimal":      Unreserved,
	"delete":       Unreserved,
	"double":       Unreserved,
	"exists":       Unreserved,
	"first":        Unreserved,
	"float":        Unreserved,
	"if":           Unreserved,
	"increment":    Unreserved,
	"index":        Unreserved,
	"insert":       Unreserved,
	"int":          Unreserved,
	"integer":      Unreserved,
	"last":         Unreserved,
	"maxvalue":     Unreserved,
	"minvalue":     Unreserved,
	"name":         Unreserved,
	"no":           Unreserved,
	"none":         Unreserved,
	"nulls":        Unreserved,
	"numeric":      Unreserved,
	"owned":        Unreserved,
	"precision":    Unreserved,
	"real":         Unreserved,
	"restart":      Unreserved,
	"sequence":     Unreserved,
	"setof":        Unreserved,
	"smallint":     Unreserved,
	"start":        Unreserved,
	"timestamp":    Unreserved,
	"update":       Unreserved,
	"varchar":      Unreserved,
	"varying":      Unreserved,
}

// Lookup returns the category of a lower-case word.
func Lookup(word string) Category {
	return table[word]
}

// IsKeyword reports whether word has any keyword category.
func IsKeyword(word string) bool {
	return table[word] != None
}

// IsReserved reports whether word is a reserved keyword.
func IsReserved(word string) bool {
	return table[word] == Reserved
}
