package domain

// Categories every user starts out with
var DefaultCategories = []Category{
	{Name: "Work", Color: "#3b82f6", IsDefault: true},
	{Name: "Study", Color: "#22c55e", IsDefault: true},
	{Name: "Skill Development", Color: "#14b8a6", IsDefault: true},
	{Name: "Spiritual & Faith", Color: "#f59e0b", IsDefault: true},
	{Name: "Health & Fitness", Color: "#ef4444", IsDefault: true},
	{Name: "Personal Time", Color: "#8b5cf6", IsDefault: true},
	{Name: "Family & Social", Color: "#eab308", IsDefault: true},
	{Name: "Social Media", Color: "#ec4899", IsDefault: true},
	{Name: "Leisure & Hobbies", Color: "#06b6d4", IsDefault: true},
	{Name: "Eating & Nutrition", Color: "#f97316", IsDefault: true},
	{Name: "Transportation", Color: "#64748b", IsDefault: true},
	{Name: "Home & Chores", Color: "#78716c", IsDefault: true},
	{Name: "Sleep", Color: "#4f46e5", IsDefault: true},
}
