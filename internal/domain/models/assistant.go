package models

import "encoding/json"

const (
	LanguagePersian = "fa"
	LanguageEnglish = "en"
)

// ChatMessage is one avatar utterance. Audio is base64 mp3, Lipsync the raw
// rhubarb document.
type ChatMessage struct {
	Text             string          `json:"text"`
	Audio            string          `json:"audio,omitempty"`
	Lipsync          json.RawMessage `json:"lipsync,omitempty"`
	FacialExpression string          `json:"facialExpression"`
	Animation        string          `json:"animation"`
}

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	Language  string `json:"language"`
}

type ChatResponse struct {
	Messages []ChatMessage `json:"messages"`
}

type AskRequest struct {
	Question string `json:"question"`
}

// ConversationLine is one turn sent to /extract-info.
type ConversationLine struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

type ExtractInfoRequest struct {
	Messages []ConversationLine `json:"messages"`
}

type ExtractedPassenger struct {
	FullName     string `json:"fullName"`
	NationalID   string `json:"nationalId"`
	LuggageCount int    `json:"luggageCount"`
}

type ExtractInfoResponse struct {
	AirportName  string               `json:"airportName"`
	TravelDate   string               `json:"travelDate"`
	FlightNumber string               `json:"flightNumber"`
	Passengers   []ExtractedPassenger `json:"passengers"`
}
