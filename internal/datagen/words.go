package datagen

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"unicode"
)

// Local pools for generated people, companies and addresses. Spanish
// names keep the dataset coherent with the Colombian store locale.

var firstNames = []string{
	"Juan", "Carlos", "Andrés", "Felipe", "Santiago", "Sebastián", "Camilo",
	"Daniel", "Alejandro", "Mateo", "Nicolás", "Julián", "Esteban", "Iván",
	"Óscar", "Ricardo", "Jorge", "Héctor", "Fabián", "Mauricio",
	"María", "Camila", "Valentina", "Sofía", "Isabella", "Daniela", "Laura",
	"Paula", "Juliana", "Mariana", "Gabriela", "Natalia", "Carolina", "Luisa",
	"Ángela", "Diana", "Sandra", "Claudia", "Patricia", "Verónica",
}

var lastNames = []string{
	"García", "Rodríguez", "Martínez", "López", "González", "Hernández",
	"Pérez", "Sánchez", "Ramírez", "Torres", "Flórez", "Rivera", "Gómez",
	"Díaz", "Vargas", "Castro", "Ortiz", "Rueda", "Moreno", "Jiménez",
	"Cárdenas", "Ospina", "Restrepo", "Mejía", "Zapata", "Agudelo",
	"Betancur", "Quintero", "Valencia", "Montoya",
}

var companySuffixes = []string{"S.A.S.", "Ltda.", "y Cía.", "S.A.", "Hermanos"}

var companyStems = []string{
	"Distribuciones", "Comercializadora", "Insumos", "Suministros",
	"Importadora", "Industrias", "Manufacturas", "Proveeduría",
}

var streetTypes = []string{"Calle", "Carrera", "Diagonal", "Transversal", "Avenida"}

var fallbackProductWords = []string{
	"Aurora", "Brisa", "Calma", "Destello", "Esencia", "Fulgor", "Hogar",
	"Luz", "Mística", "Niebla", "Oasis", "Paz", "Reflejo", "Serenata",
	"Susurro", "Terral", "Umbral", "Vereda", "Alba", "Candela",
}

// FreeEmailDomains backs client address generation; staff always get
// the store domain.
var FreeEmailDomains = []string{
	"gmail.com",
	"yahoo.com",
	"hotmail.com",
	"outlook.com",
	"icloud.com",
}

// Carriers is the pool of Colombian shipping companies.
var Carriers = []string{
	"Servientrega",
	"Interrapidísimo",
	"Coordinadora",
	"Deprisa",
	"TCC",
	"Envía",
}

// CityInfo pairs a city with its postal code.
type CityInfo struct {
	City       string
	PostalCode string
}

// DepartmentCities maps Colombian departments to their main cities.
var DepartmentCities = map[string][]CityInfo{
	"Antioquia": {
		{"Medellín", "050001"}, {"Envigado", "055422"}, {"Bello", "051050"},
		{"Itagüí", "055413"}, {"Apartadó", "057040"}, {"Turbo", "057050"},
	},
	"Cundinamarca": {
		{"Bogotá", "110111"}, {"Soacha", "250051"}, {"Chía", "250001"}, {"Cajicá", "250220"},
	},
	"Valle del Cauca": {
		{"Cali", "760001"}, {"Palmira", "763531"}, {"Buenaventura", "764501"}, {"Tuluá", "763022"},
	},
	"Atlántico": {
		{"Barranquilla", "080001"}, {"Soledad", "083001"}, {"Malambo", "083021"}, {"Puerto Colombia", "081001"},
	},
	"Santander": {
		{"Bucaramanga", "680001"}, {"Floridablanca", "681001"}, {"Barrancabermeja", "687031"}, {"Girón", "687541"},
	},
	"Bolívar": {
		{"Cartagena", "130001"}, {"Magangué", "132501"}, {"Turbaco", "131001"}, {"Arjona", "130501"},
	},
	"Córdoba": {
		{"Montería", "230001"}, {"Lorica", "234501"}, {"Cereté", "233501"}, {"Sahagún", "232501"},
	},
	"Norte de Santander": {
		{"Cúcuta", "540001"}, {"Ocaña", "546551"}, {"Pamplona", "543050"}, {"Los Patios", "541010"},
	},
	"Nariño": {
		{"Pasto", "520001"}, {"Tumaco", "528501"}, {"Ipiales", "524060"}, {"La Unión", "524001"},
	},
	"Caldas": {
		{"Manizales", "170001"}, {"Villamaría", "170002"}, {"Chinchiná", "176020"}, {"Neira", "175020"},
	},
	"Quindío": {
		{"Armenia", "630001"}, {"Montenegro", "633001"}, {"Circasia", "631001"}, {"Salento", "631020"},
	},
	"Risaralda": {
		{"Pereira", "660001"}, {"Dosquebradas", "661001"}, {"Santa Rosa de Cabal", "663001"}, {"La Virginia", "662001"},
	},
	"Tolima": {
		{"Ibagué", "730001"}, {"Espinal", "733501"}, {"Melgar", "734001"}, {"Líbano", "731501"},
	},
	"Huila": {
		{"Neiva", "410001"}, {"Pitalito", "417030"}, {"La Plata", "415060"}, {"Garzón", "414001"},
	},
	"Cauca": {
		{"Popayán", "190001"}, {"Santander de Quilichao", "191030"}, {"El Bordo", "195001"},
	},
	"Caquetá": {
		{"Florencia", "180001"}, {"San Vicente del Caguán", "182001"}, {"La Montañita", "183001"},
	},
	"Meta": {
		{"Villavicencio", "500001"}, {"Acacías", "501001"}, {"Cumaral", "501501"}, {"Restrepo", "501020"},
	},
	"Casanare": {
		{"Yopal", "850001"}, {"Aguazul", "851001"}, {"Támara", "852001"}, {"Hato Corozal", "853001"},
	},
	"Arauca": {
		{"Arauca", "810001"}, {"Saravena", "813001"}, {"Tame", "814001"}, {"Fortul", "812001"},
	},
	"Vaupés": {
		{"Mitú", "970001"}, {"Carurú", "971001"}, {"Papunaua", "972001"}, {"Taraira", "973001"},
	},
	"Guaviare": {
		{"San José del Guaviare", "950001"}, {"Calamar", "951001"}, {"Miraflores", "952001"}, {"El Retorno", "953001"},
	},
	"Guainía": {
		{"Inírida", "940001"}, {"Barranco Minas", "943001"}, {"San Felipe", "944001"}, {"Cacahual", "945001"},
	},
	"Vichada": {
		{"Puerto Carreño", "990001"}, {"La Primavera", "991001"}, {"Santa Rosalía", "992001"}, {"Cumaribo", "993001"},
	},
	"Amazonas": {
		{"Leticia", "910001"}, {"Puerto Nariño", "911001"}, {"El Encanto", "912001"},
	},
	"Cesar": {
		{"Valledupar", "200001"}, {"Aguachica", "205001"}, {"La Paz", "201001"}, {"Codazzi", "202001"},
	},
	"La Guajira": {
		{"Riohacha", "440001"}, {"Maicao", "442001"}, {"Uribia", "443001"}, {"Fonseca", "444001"},
	},
	"Sucre": {
		{"Sincelejo", "700001"}, {"Corozal", "701001"}, {"Sampués", "702001"}, {"San Marcos", "703001"},
	},
	"Putumayo": {
		{"Mocoa", "860001"}, {"Puerto Asís", "861001"}, {"Orito", "862001"}, {"San Francisco", "863001"},
	},
	"Chocó": {
		{"Quibdó", "270001"}, {"Carmen del Darién", "271001"},
	},
}

// departmentNames is a stable iteration order over DepartmentCities.
var departmentNames = func() []string {
	names := make([]string, 0, len(DepartmentCities))
	for name := range DepartmentCities {
		names = append(names, name)
	}
	// Sorted insertion keeps random picks deterministic given a seed.
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
	return names
}()

// RandomLocation picks a department and one of its cities.
func RandomLocation(rng *rand.Rand) (department string, city CityInfo) {
	department = departmentNames[rng.Intn(len(departmentNames))]
	cities := DepartmentCities[department]
	return department, cities[rng.Intn(len(cities))]
}

func randomPersonName(rng *rand.Rand) string {
	return firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]
}

func randomCompanyName(rng *rand.Rand) string {
	return fmt.Sprintf("%s %s %s",
		companyStems[rng.Intn(len(companyStems))],
		lastNames[rng.Intn(len(lastNames))],
		companySuffixes[rng.Intn(len(companySuffixes))])
}

func randomStreetAddress(rng *rand.Rand) string {
	return fmt.Sprintf("%s %d # %d-%d",
		streetTypes[rng.Intn(len(streetTypes))],
		1+rng.Intn(150), 1+rng.Intn(99), 1+rng.Intn(99))
}

func randomSecondaryAddress(rng *rand.Rand) string {
	kinds := []string{"Apto", "Torre", "Interior", "Casa", "Local"}
	return fmt.Sprintf("%s %d", kinds[rng.Intn(len(kinds))], 1+rng.Intn(999))
}

// randomColombianMobile returns an 11-digit number starting with 3.
func randomColombianMobile(rng *rand.Rand) string {
	var b strings.Builder
	b.WriteByte('3')
	for i := 0; i < 10; i++ {
		b.WriteByte(byte('0' + rng.Intn(10)))
	}
	return b.String()
}

func randomFallbackWord(rng *rand.Rand) string {
	return fallbackProductWords[rng.Intn(len(fallbackProductWords))]
}

var (
	emailSpaceRe      = regexp.MustCompile(`\s+`)
	emailInvalidRe    = regexp.MustCompile(`[^a-z0-9_]`)
	emailUnderscoreRe = regexp.MustCompile(`_+`)
)

// SanitizeForEmail turns a Spanish full name into an email local part:
// accents stripped, lowercased, spaces collapsed into underscores.
func SanitizeForEmail(name string) string {
	ascii := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r < 128:
			ascii = append(ascii, r)
		default:
			if folded, ok := accentFold[r]; ok {
				ascii = append(ascii, folded)
			}
		}
	}
	s := strings.ToLower(string(ascii))
	s = emailSpaceRe.ReplaceAllString(s, "_")
	s = emailInvalidRe.ReplaceAllString(s, "")
	return strings.Trim(emailUnderscoreRe.ReplaceAllString(s, "_"), "_")
}

var accentFold = map[rune]rune{
	'á': 'a', 'é': 'e', 'í': 'i', 'ó': 'o', 'ú': 'u', 'ü': 'u', 'ñ': 'n',
	'Á': 'A', 'É': 'E', 'Í': 'I', 'Ó': 'O', 'Ú': 'U', 'Ü': 'U', 'Ñ': 'N',
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
