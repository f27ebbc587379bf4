package analyzer

import (
	"github.com/ppiankov/incidentlens/internal/models"
)

func (a *Analyzer) addSite(inc *models.Incident) {
	site, exists := a.sites[inc.Site]
	if !exists {
		site = &models.SiteSummary{Site: inc.Site}
		a.sites[inc.Site] = site
		a.siteOrder = append(a.siteOrder, inc.Site)
	}

	site.IncidentCount++
	site.Severities.Add(inc.Severity)
	site.TotalCost = site.TotalCost.Add(inc.Cost)
	site.TotalResolutionMinutes += inc.ResolutionMinutes
}

func (a *Analyzer) addCategory(inc *models.Incident) {
	category, exists := a.categories[inc.Category]
	if !exists {
		category = &models.CategorySummary{Category: inc.Category}
		a.categories[inc.Category] = category
	}

	category.IncidentCount++
	category.TotalImpact += inc.ImpactScore
}

func (a *Analyzer) addDevice(inc *models.Incident) {
	bucket, exists := a.devices[inc.Hostname]
	if !exists {
		bucket = &deviceBucket{
			summary:    models.DeviceSummary{Hostname: inc.Hostname},
			weeks:      make(map[int]struct{}),
			severities: make(map[string]struct{}),
		}
		a.devices[inc.Hostname] = bucket
		a.deviceOrder = append(a.deviceOrder, inc.Hostname)
	}

	d := &bucket.summary
	// Last seen wins for the descriptive fields.
	d.Site = inc.Site
	d.Category = inc.Category
	d.DeviceType = inc.DeviceType

	d.IncidentCount++
	d.TotalImpact += inc.ImpactScore
	d.TotalCost = d.TotalCost.Add(inc.Cost)
	d.TotalAffectedUsers += inc.AffectedUsers
	bucket.weeks[inc.Week] = struct{}{}
	bucket.severities[inc.RawSeverity] = struct{}{}
}

func (a *Analyzer) addWeek(inc *models.Incident) {
	week, exists := a.weeks[inc.Week]
	if !exists {
		week = &models.WeekSummary{Week: inc.Week}
		a.weeks[inc.Week] = week
	}

	week.IncidentCount++
	week.TotalCost = week.TotalCost.Add(inc.Cost)
	week.TotalImpact += inc.ImpactScore
}
