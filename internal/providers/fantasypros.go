package providers

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/auction-data-service/internal/models"
)

const fantasyProsSource = "fantasypros"

// Literal markers of the FantasyPros "Overall" cell: "<name> (<team> - <position>)".
// Kept as named constants so a markup drift upstream is a one-place edit.
const (
	fpNameEnd    = " ("
	fpTeamPosSep = " - "
	fpPosEnd     = ")"
)

// Column headers of the draft-wizard auction table
const (
	fpOverallColumn = "Overall"
	fpValueColumn   = "Value"
)

// FantasyProsClient scrapes projected auction values from the FantasyPros
// draft-wizard table
type FantasyProsClient struct {
	client  *http.Client
	baseURL string
	logger  *logrus.Logger
}

// NewFantasyProsClient creates a new FantasyPros scrape client
func NewFantasyProsClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *FantasyProsClient {
	return &FantasyProsClient{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// GetAuctionValues scrapes the projected auction value table for the given
// league shape. Output is sorted descending by price with ids assigned by the
// sorted row index. Rows that do not match the composite Overall pattern are
// dropped and the rest of the table is returned.
func (c *FantasyProsClient) GetAuctionValues(ctx context.Context, scoring string, numTeams, budget int) ([]models.ValuedPlayer, error) {
	url := fmt.Sprintf("%s/auction/fp_nfl.jsp?scoring=%s&teams=%d&tb=%d", c.baseURL, scoring, numTeams, budget)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create fantasypros request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Source: fantasyProsSource, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Source: fantasyProsSource, StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fantasypros page: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("fantasypros page contains no table")
	}

	columns := fpColumnIndex(table)
	overallIdx, okOverall := columns[fpOverallColumn]
	valueIdx, okValue := columns[fpValueColumn]
	if !okOverall || !okValue {
		return nil, fmt.Errorf("fantasypros table is missing the %s or %s column", fpOverallColumn, fpValueColumn)
	}

	rows := table.Find("tbody tr")
	if rows.Length() == 0 {
		// No tbody; skip the header row instead
		rows = table.Find("tr").Slice(1, goquery.ToEnd)
	}

	players := []models.ValuedPlayer{}
	skipped := 0
	rows.Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() <= overallIdx || cells.Length() <= valueIdx {
			skipped++
			return
		}

		overall := strings.TrimSpace(cells.Eq(overallIdx).Text())
		name, team, position, err := parseFantasyProsOverall(overall)
		if err != nil {
			c.logger.WithError(err).WithField("source", fantasyProsSource).Debug("Skipping malformed row")
			skipped++
			return
		}

		price, err := parseFantasyProsValue(strings.TrimSpace(cells.Eq(valueIdx).Text()))
		if err != nil {
			c.logger.WithError(err).WithField("source", fantasyProsSource).Debug("Skipping malformed row")
			skipped++
			return
		}

		players = append(players, models.ValuedPlayer{
			Player: models.Player{
				Name:     name,
				Team:     team,
				Position: position,
				Price:    price,
			},
		})
	})

	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Price > players[j].Price
	})
	for i := range players {
		players[i].ID = i
		players[i].Value = models.FormatValue(players[i].Price)
	}

	c.logger.WithFields(logrus.Fields{
		"source":  fantasyProsSource,
		"players": len(players),
		"skipped": skipped,
	}).Debug("Scraped auction values")

	return players, nil
}

// parseFantasyProsOverall splits "<name> (<team> - <position>)" into its parts
func parseFantasyProsOverall(overall string) (name, team, position string, err error) {
	nameEnd := strings.Index(overall, fpNameEnd)
	if nameEnd < 0 {
		return "", "", "", &MalformedRecordError{Source: fantasyProsSource, Reason: fmt.Sprintf("no %q in %q", fpNameEnd, overall)}
	}
	sep := strings.Index(overall, fpTeamPosSep)
	if sep < nameEnd {
		return "", "", "", &MalformedRecordError{Source: fantasyProsSource, Reason: fmt.Sprintf("no %q in %q", fpTeamPosSep, overall)}
	}
	posEnd := strings.Index(overall, fpPosEnd)
	if posEnd < sep+len(fpTeamPosSep) {
		return "", "", "", &MalformedRecordError{Source: fantasyProsSource, Reason: fmt.Sprintf("no %q in %q", fpPosEnd, overall)}
	}

	name = overall[:nameEnd]
	team = overall[nameEnd+len(fpNameEnd) : sep]
	position = overall[sep+len(fpTeamPosSep) : posEnd]
	return name, team, position, nil
}

// parseFantasyProsValue parses a "$<integer>" currency cell
func parseFantasyProsValue(value string) (int, error) {
	if !strings.HasPrefix(value, "$") {
		return 0, &MalformedRecordError{Source: fantasyProsSource, Reason: fmt.Sprintf("value %q has no currency symbol", value)}
	}
	price, err := strconv.Atoi(strings.TrimPrefix(value, "$"))
	if err != nil {
		return 0, &MalformedRecordError{Source: fantasyProsSource, Reason: fmt.Sprintf("value %q is not an integer", value)}
	}
	if price < 1 {
		price = 1
	}
	return price, nil
}

// fpColumnIndex maps header text to column position for the first table row
func fpColumnIndex(table *goquery.Selection) map[string]int {
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
