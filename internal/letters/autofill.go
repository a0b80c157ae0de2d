package letters

import (
	"strings"
	"time"

	"github.com/talentohq/ats-server/internal/domain"
)

const dateLayout = "02/01/2006"

// Resolver maps detected placeholder names to values from a candidate
// and its process. The clock is injectable so current-date fields are
// reproducible in tests.
type Resolver struct {
	CompanyName string
	Now         func() time.Time
}

// NewResolver creates a resolver using wall-clock time.
func NewResolver(companyName string) *Resolver {
	return &Resolver{CompanyName: companyName, Now: time.Now}
}

// AutoFill resolves every detected field name to a value. Lookup is
// exact-match first, then case-insensitive; anything still unmatched
// maps to the empty string so the field is known-but-blank rather than
// absent. The synonym table is a literal enumeration, not pattern rules.
func (r *Resolver) AutoFill(fields []string, cand *domain.Candidate, proc *domain.Process) map[string]string {
	dict := r.buildDictionary(cand, proc)

	lower := make(map[string]string, len(dict))
	for k, v := range dict {
		key := strings.ToLower(k)
		if _, ok := lower[key]; !ok {
			lower[key] = v
		}
	}

	out := make(map[string]string, len(fields))
	for _, f := range fields {
		if v, ok := dict[f]; ok {
			out[f] = v
			continue
		}
		if v, ok := lower[strings.ToLower(f)]; ok {
			out[f] = v
			continue
		}
		out[f] = ""
	}
	return out
}

func (r *Resolver) buildDictionary(cand *domain.Candidate, proc *domain.Process) map[string]string {
	var name, email, phone, dni, linkedin, address, hireDate string
	if cand != nil {
		name = cand.Name
		email = cand.Email
		phone = cand.Phone
		dni = cand.DNI
		linkedin = cand.LinkedInURL
		address = cand.Address
		if cand.HiredAt != nil {
			hireDate = cand.HiredAt.Format(dateLayout)
		}
	}
	var title string
	if proc != nil {
		title = proc.Title
	}
	today := r.Now().Format(dateLayout)

	return map[string]string{
		"nombre":    name,
		"Nombre":    name,
		"name":      name,
		"Name":      name,
		"candidato": name,
		"Candidato": name,

		"email":  email,
		"Email":  email,
		"correo": email,
		"Correo": email,
		"e-mail": email,

		"telefono": phone,
		"Telefono": phone,
		"teléfono": phone,
		"Teléfono": phone,
		"phone":    phone,
		"celular":  phone,

		"dni":       dni,
		"DNI":       dni,
		"documento": dni,
		"Documento": dni,

		"linkedin": linkedin,
		"LinkedIn": linkedin,
		"Linkedin": linkedin,

		"direccion": address,
		"Direccion": address,
		"dirección": address,
		"Dirección": address,
		"address":   address,
		"domicilio": address,

		"fecha de incorporacion": hireDate,
		"Fecha de Incorporacion": hireDate,
		"fecha de incorporación": hireDate,
		"Fecha de Incorporación": hireDate,
		"hire date":              hireDate,

		"puesto":   title,
		"Puesto":   title,
		"cargo":    title,
		"Cargo":    title,
		"proceso":  title,
		"Proceso":  title,
		"position": title,

		"empresa": r.CompanyName,
		"Empresa": r.CompanyName,
		"company": r.CompanyName,
		"Company": r.CompanyName,

		"fecha":        today,
		"Fecha":        today,
		"fecha actual": today,
		"date":         today,
		"Date":         today,
	}
}
