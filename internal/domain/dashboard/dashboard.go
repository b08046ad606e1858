// Package dashboard derives workspace statistics from its projects.
package dashboard

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/freelance-desk/internal/models"
	"github.com/BruksfildServices01/freelance-desk/internal/timezone"
)

const (
	MonthsWindow   = 6
	TopClientLimit = 5
	RecentLimit    = 5
)

type Stats struct {
	TotalProjects     int `json:"totalProjects"`
	OngoingProjects   int `json:"ongoingProjects"`
	CompletedProjects int `json:"completedProjects"`

	TotalRevenue     float64 `json:"totalRevenue"`
	OngoingRevenue   float64 `json:"ongoingRevenue"`
	CompletedRevenue float64 `json:"completedRevenue"`

	StatusCounts   map[string]int   `json:"statusCounts"`
	MonthlyRevenue []MonthBucket    `json:"monthlyRevenue"`
	TopClients     []ClientCount    `json:"topClients"`
	RecentProjects []models.Project `json:"recentProjects"`
}

type MonthBucket struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Projects int     `json:"projects"`
}

type ClientCount struct {
	ClientName string  `json:"clientName"`
	Projects   int     `json:"projects"`
	Revenue    float64 `json:"revenue"`
}

// Compute is pure: months are bucketed by createdAt in loc, ending with
// the month of now.
func Compute(projects []models.Project, now time.Time, loc *time.Location) Stats {
	if loc == nil {
		loc = time.UTC
	}
	s := Stats{
		StatusCounts:   map[string]int{},
		MonthlyRevenue: monthWindow(now.In(loc)),
		TopClients:     []ClientCount{},
		RecentProjects: []models.Project{},
	}

	monthIdx := make(map[string]int, len(s.MonthlyRevenue))
	for i, b := range s.MonthlyRevenue {
		monthIdx[b.Month] = i
	}

	clientIdx := map[string]int{}
	var clients []ClientCount

	for _, p := range projects {
		s.TotalProjects++
		s.TotalRevenue += p.TotalPrice
		s.StatusCounts[p.Status]++

		if p.Status == models.ProjectStatusDone {
			s.CompletedProjects++
			s.CompletedRevenue += p.TotalPrice
		} else {
			s.OngoingProjects++
			s.OngoingRevenue += p.TotalPrice
		}

		if i, ok := monthIdx[p.CreatedAt.In(loc).Format("2006-01")]; ok {
			s.MonthlyRevenue[i].Revenue += p.TotalPrice
			s.MonthlyRevenue[i].Projects++
		}

		name := p.ClientName
		if name == "" {
			continue
		}
		i, ok := clientIdx[name]
		if !ok {
			i = len(clients)
			clientIdx[name] = i
			clients = append(clients, ClientCount{ClientName: name})
		}
		clients[i].Projects++
		clients[i].Revenue += p.TotalPrice
	}

	// ties keep encounter order
	sort.SliceStable(clients, func(a, b int) bool {
		return clients[a].Projects > clients[b].Projects
	})
	if len(clients) > TopClientLimit {
		clients = clients[:TopClientLimit]
	}
	if clients != nil {
		s.TopClients = clients
	}

	s.RecentProjects = recent(projects, RecentLimit)
	return s
}

func monthWindow(now time.Time) []MonthBucket {
	first := timezone.MonthStart(now)
	out := make([]MonthBucket, MonthsWindow)
	for i := 0; i < MonthsWindow; i++ {
		m := first.AddDate(0, i-(MonthsWindow-1), 0)
		out[i] = MonthBucket{Month: m.Format("2006-01")}
	}
	return out
}

func recent(projects []models.Project, n int) []models.Project {
	sorted := make([]models.Project, len(projects))
	copy(sorted, projects)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].CreatedAt.After(sorted[b].CreatedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
