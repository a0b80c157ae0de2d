package importer

import (
	"sort"
	"strconv"
	"strings"
)

// Canonical candidate field keys. These match the JSON field names of the
// candidate creation payload.
const (
	FieldName              = "name"
	FieldEmail             = "email"
	FieldPhone             = "phone"
	FieldDescription       = "description"
	FieldSource            = "source"
	FieldSalaryExpectation = "salaryExpectation"
	FieldAgreedSalary      = "agreedSalary"
	FieldAge               = "age"
	FieldDNI               = "dni"
	FieldLinkedInURL       = "linkedinUrl"
	FieldAddress           = "address"
	FieldProvince          = "province"
	FieldDistrict          = "district"
)

// columnAliases maps lowercase header names to canonical field keys.
// Import files arrive with Spanish or English headers depending on which
// spreadsheet template the recruiter started from, so both sets map here.
var columnAliases = map[string]string{
	// Name
	"nombre":          FieldName,
	"nombre completo": FieldName,
	"candidato":       FieldName,
	"name":            FieldName,
	"full name":       FieldName,

	// Email
	"email":              FieldEmail,
	"e-mail":             FieldEmail,
	"mail":               FieldEmail,
	"correo":             FieldEmail,
	"correo electronico": FieldEmail,
	"correo electrónico": FieldEmail,

	// Phone
	"telefono": FieldPhone,
	"teléfono": FieldPhone,
	"phone":    FieldPhone,
	"celular":  FieldPhone,
	"movil":    FieldPhone,
	"móvil":    FieldPhone,

	// Description / notes
	"descripcion": FieldDescription,
	"descripción": FieldDescription,
	"description": FieldDescription,
	"notas":       FieldDescription,
	"notes":       FieldDescription,

	// Source
	"fuente": FieldSource,
	"origen": FieldSource,
	"source": FieldSource,

	// Salary
	"expectativa salarial": FieldSalaryExpectation,
	"salario esperado":     FieldSalaryExpectation,
	"pretension salarial":  FieldSalaryExpectation,
	"pretensión salarial":  FieldSalaryExpectation,
	"salary expectation":   FieldSalaryExpectation,
	"salario acordado":     FieldAgreedSalary,
	"sueldo acordado":      FieldAgreedSalary,
	"agreed salary":        FieldAgreedSalary,

	// Age
	"edad": FieldAge,
	"age":  FieldAge,

	// National ID
	"dni":       FieldDNI,
	"documento": FieldDNI,
	"cedula":    FieldDNI,
	"cédula":    FieldDNI,

	// LinkedIn
	"linkedin":        FieldLinkedInURL,
	"linkedin url":    FieldLinkedInURL,
	"linkedinurl":     FieldLinkedInURL,
	"perfil linkedin": FieldLinkedInURL,

	// Location
	"direccion": FieldAddress,
	"dirección": FieldAddress,
	"address":   FieldAddress,
	"domicilio": FieldAddress,
	"provincia": FieldProvince,
	"province":  FieldProvince,
	"distrito":  FieldDistrict,
	"district":  FieldDistrict,
}

// CanonicalKey resolves a raw header name to its canonical field key.
// Unmapped names pass through trimmed with their original casing so
// unknown columns are visible downstream instead of silently dropped.
func CanonicalKey(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if canonical, ok := columnAliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// NormalizeRow canonicalizes every column of a raw row and normalizes its
// values: strings are trimmed, blanks become absent (so optional fields
// are omitted rather than stored as empty strings), and age is coerced to
// a number when the cell parses fully as one. Keys are visited in sorted
// order so duplicate-alias conflicts resolve deterministically (first
// non-absent value under the sorted raw key order wins).
func NormalizeRow(row RawRow) RawRow {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(RawRow, len(row))
	for _, k := range keys {
		canonical := CanonicalKey(k)
		if canonical == "" {
			continue
		}
		v := normalizeValue(canonical, row[k])
		if v.Kind == KindAbsent {
			continue
		}
		if _, exists := out[canonical]; exists {
			continue
		}
		out[canonical] = v
	}
	return out
}

func normalizeValue(key string, v Value) Value {
	if v.Kind != KindString {
		return v
	}
	s := strings.TrimSpace(v.Str)
	if s == "" {
		return Value{}
	}
	if key == FieldAge {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return NumberValue(f)
		}
	}
	return StringValue(s)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
