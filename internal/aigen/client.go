// Package aigen talks to the external content generators: an
// OpenAI-compatible chat endpoint for Spanish marketing copy and
// Pollinations for product imagery. Callers are expected to fall back
// to local generation when a call fails.
package aigen

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/Dejatori/amaluz-proyecto-betek/internal/pkg/httpclient"
)

const (
	defaultModel = "llama3.2"

	systemPrompt = "La respuesta debe estar perfectamente escrita en español, " +
		"sin errores ortográficos ni gramaticales, sin comillas ni puntuación adicional."

	tinyURLEndpoint = "https://tinyurl.com/api-create.php"
)

// TextClient generates Spanish prose through an OpenAI-compatible
// chat completions endpoint.
type TextClient struct {
	http     *httpclient.Client
	endpoint string
	model    string
}

func NewTextClient(http *httpclient.Client, endpoint string) *TextClient {
	return &TextClient{http: http, endpoint: endpoint, model: defaultModel}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *TextClient) complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "encode chat request")
	}

	body, err := c.http.PostJSON(ctx, c.endpoint, payload)
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return "", errors.Wrap(err, "decode chat response")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat response has no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// trimTrailingDot removes a single trailing period the model tends to
// add despite the prompt asking it not to.
func trimTrailingDot(s string) string {
	if strings.HasSuffix(s, ".") {
		return strings.TrimSpace(strings.TrimSuffix(s, "."))
	}
	return s
}

// InferGender classifies a first name as Masculino, Femenino or Otro.
// The model often answers with extra prose, so an exact match is tried
// first and a keyword scan second.
func (c *TextClient) InferGender(ctx context.Context, name string) (string, error) {
	prompt := "Rol: Actúa como un experto en determinación de género basado en nombres, con excelente dominio del español.\n" +
		"Tarea: Determina el género de una persona basándote únicamente en su nombre.\n" +
		"Contexto: El nombre proporcionado es '" + name + "'. El género debe ser uno de los siguientes: 'Masculino' o 'Femenino'.\n" +
		"Formato de retorno: Devuelve únicamente el género como una cadena de texto simple. No incluyas comillas ni puntuación adicional al final.\n" +
		"Advertencias: La respuesta debe estar perfectamente escrita en español, sin errores ortográficos ni gramaticales."

	raw, err := c.complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	cleaned := trimTrailingDot(raw)
	if cleaned == "Masculino" || cleaned == "Femenino" {
		return cleaned, nil
	}

	lower := strings.ToLower(raw)
	switch {
	case containsAny(lower, "masculino", "masculina", "hombre", "hombres", "varón"):
		return "Masculino", nil
	case containsAny(lower, "femenino", "femenina", "mujer", "mujeres"):
		return "Femenino", nil
	}
	return "Otro", nil
}

// ProductName generates a short candle name for a category and fragrance.
func (c *TextClient) ProductName(ctx context.Context, category, fragrance string) (string, error) {
	prompt := "Rol: Actúa como un creativo de marketing especializado en la creación de nombres de productos para el hogar.\n" +
		"Tarea: Genera un nombre único, atractivo y memorable para una vela.\n" +
		"Contexto: La vela pertenece a la categoría '" + category + "' y tiene una fragancia de '" + fragrance + "'. El nombre debe ser corto y evocador.\n" +
		"Formato de retorno: Devuelve únicamente el nombre del producto como una cadena de texto simple. No incluyas comillas ni ninguna puntuación al final del nombre.\n" +
		"Advertencias: Evita nombres genéricos o demasiado largos. El nombre debe ser original y fácil de recordar."

	name, err := c.complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	return trimTrailingDot(name), nil
}

// ProductDescription generates 1-3 sentences of marketing copy.
func (c *TextClient) ProductDescription(ctx context.Context, name, category, fragrance string) (string, error) {
	prompt := "Rol: Actúa como un redactor publicitario experto en descripciones de productos de bienestar y hogar, con excelente dominio del español.\n" +
		"Tarea: Crea una descripción breve (1-3 frases), evocadora y gramaticalmente impecable para la vela llamada '" + name + "'.\n" +
		"Contexto: Esta vela es de la categoría '" + category + "' y su fragancia es '" + fragrance + "'. La descripción debe resaltar la experiencia sensorial y el ambiente que la vela ayuda a crear.\n" +
		"Formato de retorno: Devuelve únicamente la descripción del producto como una cadena de texto simple. No incluyas comillas alrededor de la descripción.\n" +
		"Advertencias: Enfócate en las sensaciones y el ambiente. No menciones materiales de fabricación. Evita afirmaciones exageradas."

	return c.complete(ctx, prompt)
}

// LocationDescription generates a short visual description of a
// delivery address for couriers.
func (c *TextClient) LocationDescription(ctx context.Context) (string, error) {
	prompt := "Rol: Actúa como un asistente de logística redactando información complementaria para direcciones de entrega en español.\n" +
		"Tarea: Genera una descripción breve, útil y gramaticalmente correcta de una localización para facilitar su identificación por un repartidor.\n" +
		"Contexto: La descripción complementará una dirección formal. Debe incluir detalles visuales distintivos del lugar visibles desde la calle.\n" +
		"Formato de retorno: Devuelve únicamente la descripción de la localización como una cadena de texto simple (ej: 'Casa esquina de dos pisos, color amarillo con rejas negras'). No incluyas comillas ni puntuación innecesaria al final.\n" +
		"Advertencias: La descripción debe ser objetiva, concisa y enfocada en características físicas observables desde el exterior."

	desc, err := c.complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	return trimTrailingDot(desc), nil
}

// DeliveryNotes generates courier instructions as written by a customer.
func (c *TextClient) DeliveryNotes(ctx context.Context) (string, error) {
	prompt := "Rol: Actúa como un cliente especificando instrucciones claras para la entrega de un paquete, en español.\n" +
		"Tarea: Genera notas de entrega breves, precisas y gramaticalmente correctas para un pedido.\n" +
		"Contexto: Estas notas son para el repartidor y deben indicar preferencias o instrucciones importantes para la entrega (ej: 'Dejar en portería con Juan Pérez', 'Timbre no funciona, llamar al llegar').\n" +
		"Formato de retorno: Devuelve únicamente las notas de entrega como una cadena de texto simple. No incluyas comillas ni puntuación innecesaria al final.\n" +
		"Advertencias: Las notas deben ser directas, accionables y lo más concisas posible."

	return c.complete(ctx, prompt)
}

// ReviewComment generates a customer review coherent with the rating
// embedded in the context string.
func (c *TextClient) ReviewComment(ctx context.Context, reviewContext string) (string, error) {
	prompt := "Rol: Actúa como un cliente que ha comprado y usado un producto y ahora está escribiendo una reseña online, en español.\n" +
		"Tarea: Escribe un comentario breve (1-3 frases), auténtico y gramaticalmente impecable sobre un producto, basándote en la información y la calificación proporcionada en el contexto.\n" +
		"Contexto: La reseña es para el siguiente producto y calificación: '" + reviewContext + "'. El comentario debe reflejar la experiencia de un cliente real.\n" +
		"Formato de retorno: Devuelve únicamente el texto del comentario como una cadena de texto simple. No incluyas comillas alrededor del comentario.\n" +
		"Advertencias: El tono del comentario debe ser realista y coherente con la calificación indicada. Evita lenguaje genérico."

	return c.complete(ctx, prompt)
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// ImageClient builds Pollinations image prompts and shortens the
// resulting URLs through TinyURL.
type ImageClient struct {
	http *httpclient.Client
}

func NewImageClient(http *httpclient.Client) *ImageClient {
	return &ImageClient{http: http}
}

// ProductImageURL returns a shortened URL for a generated product photo.
func (c *ImageClient) ProductImageURL(ctx context.Context, category, size, fragrance, description string) (string, error) {
	imagePrompt := "Fotografía de producto profesional y elegante de una vela detallada, sin ningún texto, etiqueta o marca de agua visible en la imagen. " +
		"Categoría: '" + category + "', Tamaño: '" + size + "', Fragancia principal: '" + fragrance + "'. " +
		"La vela debe tener un diseño elegante y moderno, con una forma distintiva que la haga destacar. " +
		"La llama debe ser visible, iluminando suavemente la cera. " +
		"Fondo: blanco puro, minimalista y limpio, con sombras suaves y naturales proyectadas por la vela para dar profundidad. " +
		"Iluminación: tipo estudio profesional, principalmente lateral suave, diseñada para resaltar la textura de la cera y la forma tridimensional de la vela. " +
		"Tonalidad general de la imagen y ambiente: deben evocar sutilmente la esencia y las sensaciones asociadas a la fragancia '" + fragrance + "'. " +
		"Estilo visual general: limpio, moderno, sofisticado, y de alta calidad comercial. " +
		"Importante: La imagen final no debe contener ningún tipo de texto superpuesto, etiquetas, logotipos o marcas de agua. Solo la vela y el fondo descrito. " +
		"Inspiración contextual del producto: \"" + description + "\""

	pollinationsURL := "https://pollinations.ai/p/" + url.QueryEscape(imagePrompt) +
		"?width=1024&height=1024&seed=42&model=flux"

	short, err := c.http.Get(ctx, tinyURLEndpoint, url.Values{"url": {pollinationsURL}})
	if err != nil {
		log.Warn().Err(err).Msg("shortening image URL failed")
		return "", err
	}
	return strings.TrimSpace(short), nil
}
