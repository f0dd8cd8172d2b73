package domain

import "time"

// Domain selects which knowledge source grounds a conversation.
type Domain int

const (
	DomainWorkingTime Domain = iota
	DomainTraining
	DomainRemoteWork
)

// All lists domains in menu display order.
func All() []Domain {
	return []Domain{DomainWorkingTime, DomainTraining, DomainRemoteWork}
}

// Title returns the display name shown in the menu and the chat header.
func (d Domain) Title() string {
	switch d {
	case DomainWorkingTime:
		return "Règlement du Temps de Travail"
	case DomainTraining:
		return "Formation Professionnelle"
	case DomainRemoteWork:
		return "Télétravail"
	}
	return "Inconnu"
}

// Greeting returns the synthesized assistant message that opens a conversation.
// It is UI framing only and is never replayed to the completion service.
func (d Domain) Greeting() string {
	switch d {
	case DomainWorkingTime:
		return "Bonjour ! Je peux vous aider avec vos questions sur les horaires, congés, ARTT, temps partiel, heures supplémentaires, absences, etc."
	case DomainTraining:
		return "Bonjour ! Je peux vous renseigner sur le CPF, les congés de formation, la VAE, les concours, les bilans de compétences, etc. Quelle est votre question ?"
	case DomainRemoteWork:
		return "Bonjour ! Je suis l'assistant spécialiste du télétravail. Posez-moi vos questions sur la charte, les jours autorisés, les indemnités, etc."
	}
	return "Bonjour !"
}

func (d Domain) String() string {
	switch d {
	case DomainWorkingTime:
		return "temps-de-travail"
	case DomainTraining:
		return "formation"
	case DomainRemoteWork:
		return "teletravail"
	}
	return "inconnu"
}

// Role tags who authored a transcript message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is one entry of a conversation transcript. Append-only once created.
type Message struct {
	Role      Role
	Content   string
	Timestamp time.Time
}

// PromptMessage is the wire shape sent to the completion service.
type PromptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Article is a sub-section of a chapter contributing extra ranking keywords.
type Article struct {
	Title    string   `yaml:"title"`
	Keywords []string `yaml:"keywords"`
}

// Chapter is the unit of the working-time catalog used for ranking.
// The ID is stable for the process lifetime and keys the body text store.
type Chapter struct {
	ID       int       `yaml:"id"`
	Title    string    `yaml:"title"`
	Keywords []string  `yaml:"keywords"`
	Articles []Article `yaml:"articles"`
}

// AllKeywords returns the chapter keywords plus those of every article.
func (c Chapter) AllKeywords() []string {
	out := make([]string, 0, len(c.Keywords))
	out = append(out, c.Keywords...)
	for _, a := range c.Articles {
		out = append(out, a.Keywords...)
	}
	return out
}

// ScoredChapter is a ranked chapter with its accumulated relevance score.
type ScoredChapter struct {
	Chapter Chapter
	Score   int
}
