package schema

import "strings"

const PropuestaNarrativaID = "propuesta_narrativa_es"

// PropuestaNarrativa is the narrative Spanish contract. Every field is a
// string so objectives, scope and technologies come back as prose
// paragraphs. All fields are required; absent values are empty strings.
func PropuestaNarrativa() *Variant {
	return &Variant{
		ID:          PropuestaNarrativaID,
		Version:     1,
		Language:    "es",
		Name:        "propuesta_comercial",
		Description: "Business sales proposal, narrative fields, Spanish output",
		Fields: []Field{
			{Name: "cliente", Type: ShortText, Required: true,
				Description: "Nombre del cliente al que va dirigida la propuesta"},
			{Name: "sector", Type: ShortText, Required: true,
				Description: "Sector de actividad del cliente (p. ej. Seguros, Banca, Retail)"},
			{Name: "tituloProyecto", Type: ShortText, Required: true,
				Description: "Título de la propuesta o del proyecto"},
			{Name: "fecha", Type: ShortText, Required: true,
				Description: "Fecha de la propuesta"},
			{Name: "objetivos", Type: FreeText, Required: true,
				Description: "Párrafo en español que describe los objetivos de negocio del cliente"},
			{Name: "alcance", Type: FreeText, Required: true,
				Description: "Párrafo en español que describe el alcance de los trabajos o servicios"},
			{Name: "tecnologias", Type: FreeText, Required: true,
				Description: "Párrafo en español que describe las tecnologías, plataformas y herramientas propuestas"},
			{Name: "resumenSolucion", Type: FreeText, Required: true,
				Description: "Párrafo en español que resume la solución propuesta"},
		},
		Instructions: propuestaNarrativaInstructions,
	}
}

var propuestaNarrativaInstructions = strings.Join([]string{
	"Eres un experto en extraer información estructurada de propuestas comerciales.",
	"",
	"Extrae los siguientes campos:",
	"1. cliente: el nombre del cliente.",
	"2. sector: el sector de actividad del cliente (p. ej. Seguros, Banca, Retail).",
	"3. tituloProyecto: el título del proyecto y su versión si aparece.",
	"4. fecha: la fecha de la propuesta.",
	"5. objetivos: un único párrafo narrativo con los objetivos de negocio del cliente.",
	"6. alcance: un único párrafo narrativo con el alcance de los trabajos o servicios.",
	"7. tecnologias: un único párrafo narrativo con las tecnologías, plataformas y herramientas propuestas.",
	"8. resumenSolucion: un único párrafo narrativo que resuma la solución propuesta.",
	"",
	"Redacta todos los textos en español, en prosa continua y sin listas ni viñetas, aunque el documento original esté en otro idioma.",
	"Normaliza los nombres de productos y tecnologías a su forma canónica (p. ej. Power BI, JavaScript, .NET).",
	"Describe únicamente al cliente y su proyecto: excluye cualquier contenido que presente a la empresa que elabora la propuesta, como su historia, sus referencias, sus certificaciones o su equipo.",
	"Si un dato no aparece en el documento, devuelve una cadena vacía para ese campo.",
	"Devuelve el resultado como JSON estructurado.",
}, "\n")
