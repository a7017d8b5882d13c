package memory

import (
	_ "embed"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"civicfund-go/internal/model"
)

//go:embed seed.yaml
var defaultSeed []byte

type Seed struct {
	Projects      []seedProject      `yaml:"projects"`
	Wallets       []seedWallet       `yaml:"wallets"`
	Contributions []seedContribution `yaml:"contributions"`
}

type seedProject struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Category     string `yaml:"category"`
	Status       string `yaml:"status"`
	Budget       int64  `yaml:"budget"`
	Raised       int64  `yaml:"raised"`
	Contributors int    `yaml:"contributors"`
	DaysLeft     int    `yaml:"days_left"`
	HasDeadline  bool   `yaml:"has_deadline"`
	VotesFor     int    `yaml:"votes_for"`
	VotesAgainst int    `yaml:"votes_against"`
	Description  string `yaml:"description"`
}

type seedWallet struct {
	Address string `yaml:"address"`
	Balance int64  `yaml:"balance"`
}

type seedContribution struct {
	ProjectID string    `yaml:"project_id"`
	Wallet    string    `yaml:"wallet"`
	Amount    int64     `yaml:"amount"`
	CreatedAt time.Time `yaml:"created_at"`
}

// LoadSeed reads a seed file, or the embedded catalog when path is empty.
func LoadSeed(path string) (Seed, error) {
	content := defaultSeed
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Seed{}, eris.Wrapf(err, "memory: read seed %s", path)
		}
		content = raw
	}
	return ParseSeed(content)
}

func ParseSeed(content []byte) (Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(content, &seed); err != nil {
		return Seed{}, eris.Wrap(err, "memory: parse seed")
	}
	if err := seed.validate(); err != nil {
		return Seed{}, err
	}
	return seed, nil
}

func (s Seed) validate() error {
	seen := make(map[string]bool, len(s.Projects))
	for i, p := range s.Projects {
		if p.ID == "" {
			return eris.Errorf("memory: seed project %d has no id", i)
		}
		if seen[p.ID] {
			return eris.Errorf("memory: duplicate seed project %s", p.ID)
		}
		seen[p.ID] = true
		if _, ok := model.ParseStatus(p.Status); !ok {
			return eris.Errorf("memory: seed project %s has unknown status %q", p.ID, p.Status)
		}
		if p.Budget < 0 || p.Raised < 0 || p.Contributors < 0 || p.DaysLeft < 0 || p.VotesFor < 0 || p.VotesAgainst < 0 {
			return eris.Errorf("memory: seed project %s has negative figures", p.ID)
		}
	}
	for _, c := range s.Contributions {
		if !seen[c.ProjectID] {
			return eris.Errorf("memory: seed contribution references unknown project %s", c.ProjectID)
		}
	}
	return nil
}

func (p seedProject) toModel() model.Project {
	status, _ := model.ParseStatus(p.Status)
	return model.Project{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		Status:       status,
		Budget:       p.Budget,
		Raised:       p.Raised,
		Contributors: p.Contributors,
		DaysLeft:     p.DaysLeft,
		HasDeadline:  p.HasDeadline,
		VotesFor:     p.VotesFor,
		VotesAgainst: p.VotesAgainst,
		Description:  p.Description,
	}
}
