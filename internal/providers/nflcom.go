package providers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/auction-data-service/internal/models"
)

const nflSource = "nfl.com"

// nflPositions is the ordered set of position tokens searched for in the
// free-text Player cell. Order matters: the first substring hit wins.
var nflPositions = []string{"QB", "RB", "WR", "TE", "K", "DEF", "DL", "LB", "DB"}

// nflDefensivePositions are IDP rows dropped from the output; only offense,
// kickers and team defenses are retained.
var nflDefensivePositions = map[string]bool{"DL": true, "LB": true, "DB": true}

// nflNoiseWords are junk substrings the rankings page mixes into the team text
var nflNoiseWords = []string{"View News", " Q"}

const (
	nflTeamSep          = " - "
	nflSalaryPlaceholder = "--"
)

// Column headers of the NFL.com rankings table
const (
	nflPlayerColumn = "Player"
	nflByeColumn    = "Bye"
	nflSalaryColumn = "Salary ($)"
)

// NFLClient scrapes auction salaries from the NFL.com fantasy rankings pages
type NFLClient struct {
	client  *http.Client
	baseURL string
	logger  *logrus.Logger
}

// NewNFLClient creates a new NFL.com rankings scrape client
func NewNFLClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *NFLClient {
	return &NFLClient{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// GetAuctionValues scrapes both rankings pages, concatenates them, drops
// duplicates and reassigns ids by final position in the combined sequence.
// Malformed rows are skipped; rows with a null Bye column or a defensive
// position are dropped.
func (c *NFLClient) GetAuctionValues(ctx context.Context) ([]models.Player, error) {
	urls := []string{
		c.baseURL + "/research/rankings",
		c.baseURL + "/research/rankings?offset=101",
	}

	combined := []models.Player{}
	seen := make(map[string]bool)
	for _, url := range urls {
		page, err := c.scrapePage(ctx, url)
		if err != nil {
			return nil, err
		}
		for _, player := range page {
			key := player.Name + "|" + player.Team + "|" + player.Position
			if seen[key] {
				continue
			}
			seen[key] = true
			player.ID = len(combined)
			combined = append(combined, player)
		}
	}

	c.logger.WithFields(logrus.Fields{
		"source":  nflSource,
		"players": len(combined),
	}).Debug("Scraped rankings pages")

	return combined, nil
}

func (c *NFLClient) scrapePage(ctx context.Context, url string) ([]models.Player, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create nfl.com request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Source: nflSource, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Source: nflSource, StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse nfl.com page: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("nfl.com rankings page contains no table")
	}

	columns := nflColumnIndex(table)
	playerIdx, okPlayer := columns[nflPlayerColumn]
	byeIdx, okBye := columns[nflByeColumn]
	salaryIdx, okSalary := columns[nflSalaryColumn]
	if !okPlayer || !okBye || !okSalary {
		return nil, fmt.Errorf("nfl.com rankings table is missing an expected column")
	}

	rows := table.Find("tbody tr")
	if rows.Length() == 0 {
		rows = table.Find("tr").Slice(1, goquery.ToEnd)
	}

	var players []models.Player
	rows.Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() <= playerIdx || cells.Length() <= byeIdx || cells.Length() <= salaryIdx {
			return
		}

		// A null Bye marks a non-active placeholder entry
		if strings.TrimSpace(cells.Eq(byeIdx).Text()) == "" {
			return
		}

		playerText := strings.TrimSpace(cells.Eq(playerIdx).Text())
		name, team, position, err := parseNFLPlayerCell(playerText)
		if err != nil {
			c.logger.WithError(err).WithField("source", nflSource).Debug("Skipping malformed row")
			return
		}
		if nflDefensivePositions[position] {
			return
		}

		price, err := parseNFLSalary(strings.TrimSpace(cells.Eq(salaryIdx).Text()))
		if err != nil {
			c.logger.WithError(err).WithField("source", nflSource).Debug("Skipping malformed row")
			return
		}

		players = append(players, models.Player{
			Name:     name,
			Team:     team,
			Position: position,
			Price:    price,
		})
	})

	return players, nil
}

// parseNFLPlayerCell extracts name, team and position from the free-text
// Player cell, e.g. "Tom Brady QB - TB View News Q".
func parseNFLPlayerCell(cell string) (name, team, position string, err error) {
	for _, candidate := range nflPositions {
		if strings.Contains(cell, candidate) {
			position = candidate
			break
		}
	}
	if position == "" {
		return "", "", "", &MalformedRecordError{Source: nflSource, Reason: fmt.Sprintf("no position token in %q", cell)}
	}

	sep := strings.Index(cell, nflTeamSep)
	if sep < 0 {
		return "", "", "", &MalformedRecordError{Source: nflSource, Reason: fmt.Sprintf("no %q in %q", nflTeamSep, cell)}
	}
	team = cell[sep+len(nflTeamSep):]
	for _, word := range nflNoiseWords {
		team = strings.ReplaceAll(team, word, "")
	}
	team = strings.TrimSpace(team)

	name = strings.TrimSpace(cell[:strings.Index(cell, position)])
	return name, team, position, nil
}

// parseNFLSalary parses the Salary ($) cell; the "--" placeholder maps to the
// one-dollar floor.
func parseNFLSalary(salary string) (int, error) {
	if salary == nflSalaryPlaceholder {
		return 1, nil
	}
	price, err := strconv.Atoi(salary)
	if err != nil {
		return 0, &MalformedRecordError{Source: nflSource, Reason: fmt.Sprintf("salary %q is not an integer", salary)}
	}
	if price < 1 {
		price = 1
	}
	return price, nil
}

// nflColumnIndex maps header text to column position
func nflColumnIndex(table *goquery.Selection) map[string]int {
	columns := make(map[string]int)
	table.Find("thead th").Each(func(i int, cell *goquery.Selection) {
		columns[strings.TrimSpace(cell.Text())] = i
	})
	if len(columns) == 0 {
		table.Find("tr").First().Find("th, td").Each(func(i int, cell *goquery.Selection) {
			columns[strings.TrimSpace(cell.Text())] = i
		})
	}
	return columns
}
