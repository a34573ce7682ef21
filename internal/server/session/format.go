package session

import (
	"fmt"
	"strings"
)

func onlineTag(online bool) string {
	if online {
		return "Online"
	}
	return "Offline"
}

func appendEngineerDetails(b *strings.Builder, specialization string, experience, education int, skills string) {
	fmt.Fprintf(b, "Specialization: %s\n", specialization)
	fmt.Fprintf(b, "Experience: %d years\n", experience)
	fmt.Fprintf(b, "Education: %d years\n", education)
	fmt.Fprintf(b, "Skills: %s\n", skills)
}

func appendOrganizationDetails(b *strings.Builder, name, industry, description string) {
	fmt.Fprintf(b, "Organization Name: %s\n", name)
	fmt.Fprintf(b, "Industry: %s\n", industry)
	fmt.Fprintf(b, "Description: %s\n", description)
}

func appendListRow(b *strings.Builder, idx int, username, specialization string, years int, online bool) {
	fmt.Fprintf(b, "%d. %s - %s (%d years) [%s]\n", idx, username, specialization, years, onlineTag(online))
}

func appendOrgRow(b *strings.Builder, idx int, name, industry string, online bool) {
	fmt.Fprintf(b, "%d. %s - %s [%s]\n", idx, name, industry, onlineTag(online))
}
