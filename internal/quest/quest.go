// Package quest generates the quests a settlement offers.
package quest

import "fmt"

// QuestType is what the player has to do
type QuestType string

const (
	QuestTypeKill        QuestType = "kill"        // Defeat a threat
	QuestTypeFetch       QuestType = "fetch"       // Bring something back
	QuestTypeDeliver     QuestType = "deliver"     // Carry something somewhere
	QuestTypeGather      QuestType = "gather"      // Collect several of something
	QuestTypeInvestigate QuestType = "investigate" // Find something out
	QuestTypeRescue      QuestType = "rescue"      // Bring someone home
	QuestTypeEscort      QuestType = "escort"      // Keep someone or something safe on the road
)

// QuestCategory is where a quest came from
type QuestCategory string

const (
	QuestCategoryProblem QuestCategory = "problem" // The settlement's current problem
	QuestCategorySecret  QuestCategory = "secret"  // An NPC's secret
	QuestCategorySide    QuestCategory = "side"    // Everyday errands
)

// Difficulty levels
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// StatusAvailable is the status of every freshly generated quest.
const StatusAvailable = "available"

// QuestObjective is a single step of a quest
type QuestObjective struct {
	Description string `yaml:"description" json:"description"`
	Completed   bool   `yaml:"completed" json:"completed"`
}

// QuestReward is what the player receives on completion
type QuestReward struct {
	Gold       int      `yaml:"gold" json:"gold"`
	Experience int      `yaml:"experience" json:"experience"`
	Items      []string `yaml:"items,omitempty" json:"items,omitempty"` // Item IDs to grant
}

// Quest is a generated quest
type Quest struct {
	ID           string           `yaml:"id" json:"id"`
	SettlementID string           `yaml:"settlement_id" json:"settlementId"`
	Name         string           `yaml:"name" json:"name"`
	Description  string           `yaml:"description" json:"description"`
	Type         QuestType        `yaml:"type" json:"type"`
	Category     QuestCategory    `yaml:"category" json:"category"`
	Source       string           `yaml:"source" json:"source"` // e.g. "problem:bandits", "secret:<npc id>"
	GiverNPCID   string           `yaml:"giver_npc_id" json:"giverNpcId"`
	Objectives   []QuestObjective `yaml:"objectives" json:"objectives"`
	Rewards      QuestReward      `yaml:"rewards" json:"rewards"`
	Difficulty   string           `yaml:"difficulty" json:"difficulty"`
	Status       string           `yaml:"status" json:"status"`
}

// ID formats the id of the n-th quest of a settlement.
func ID(settlementID string, n int) string {
	return fmt.Sprintf("%s_quest_%d", settlementID, n)
}
