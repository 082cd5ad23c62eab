package catalog

// Roles supported by the interview catalog.
const (
	RoleProductManagement     = "Product Management"
	RoleProgramManagement     = "Program Management"
	RoleEngineeringManagement = "Engineering Management"
	RoleGeneralManagement     = "General Management"
)

// roleOrder fixes the display order of roles everywhere topics are listed.
var roleOrder = []string{
	RoleProductManagement,
	RoleProgramManagement,
	RoleEngineeringManagement,
	RoleGeneralManagement,
}

// roleTopics maps each role to its ten interview topics, in the order they
// are presented. The table is static content, not configuration.
var roleTopics = map[string][]string{
	RoleProductManagement: {
		"Product Sense",
		"Product Strategy",
		"Product Execution",
		"Product Analytics",
		"Product Design",
		"Prioritization & Trade-offs",
		"Go-to-Market",
		"User Research",
		"Technical Questions",
		"Behavioral Questions",
	},
	RoleProgramManagement: {
		"Program Planning",
		"Cross-functional Leadership",
		"Risk Management",
		"Stakeholder Management",
		"Agile & Process",
		"Resource Planning",
		"Program Metrics",
		"Dependency Management",
		"Technical Questions",
		"Behavioral Questions",
	},
	RoleEngineeringManagement: {
		"People Management",
		"Hiring & Team Building",
		"Technical Leadership",
		"System Design",
		"Project Delivery",
		"Performance Management",
		"Engineering Culture",
		"Incident Management",
		"Cross-team Collaboration",
		"Behavioral Questions",
	},
	RoleGeneralManagement: {
		"Leadership Principles",
		"Strategic Thinking",
		"Business Acumen",
		"Decision Making",
		"Change Management",
		"Conflict Resolution",
		"Organizational Design",
		"Financial Literacy",
		"Communication",
		"Behavioral Questions",
	},
}

// TopicsForRole returns the ordered topics for a role. Unknown roles get an
// empty list rather than an error; the catalog treats them as having no
// curated content.
func TopicsForRole(role string) []string {
	topics, ok := roleTopics[role]
	if !ok {
		return []string{}
	}
	out := make([]string, len(topics))
	copy(out, topics)
	return out
}

// Roles returns the supported roles in display order.
func Roles() []string {
	out := make([]string, len(roleOrder))
	copy(out, roleOrder)
	return out
}

// AllTopics returns every topic across all roles, concatenated in role
// order. Topics shared between roles appear once per role; callers that
// need a unique set must dedup themselves.
func AllTopics() []string {
	var out []string
	for _, role := range roleOrder {
		out = append(out, roleTopics[role]...)
	}
	return out
}
