package generator

var firstNames = []string{
	"Alex", "Sam", "Jordan", "Taylor", "Morgan", "Casey", "Riley", "Avery",
	"Quinn", "Charlie", "Skylar", "Dakota", "Emma", "Liam", "Olivia", "Noah",
	"Ava", "Ethan", "Sophia", "Mason", "Isabella", "William", "Mia", "James",
	"Charlotte", "Benjamin", "Amelia", "Lucas", "Harper", "Henry", "Evelyn",
	"Alexander", "Abigail", "Jack", "Emily", "Sebastian", "Elizabeth", "Michael",
	"Sofia", "Daniel", "Ella", "Matthew", "Madison", "David", "Scarlett", "Joseph",
	"Victoria", "Carter", "Aria", "Owen", "Grace", "Wyatt", "Chloe", "John",
	"Camila", "Leo", "Penelope", "Jackson", "Aiden", "Layla",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark",
	"Ramirez", "Lewis", "Robinson", "Walker", "Young", "Allen", "King",
	"Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores", "Green",
	"Adams", "Nelson", "Baker", "Hall", "Rivera", "Campbell", "Mitchell",
}

// dietaryOptions are (restrictions, probability) pairs; probabilities sum to 1
var dietaryOptions = []struct {
	restrictions []string
	weight       float64
}{
	{nil, 0.60},
	{[]string{"vegetarian"}, 0.15},
	{[]string{"vegan"}, 0.08},
	{[]string{"gluten-free"}, 0.07},
	{[]string{"dairy-free"}, 0.04},
	{[]string{"nut-free"}, 0.03},
	{[]string{"vegetarian", "gluten-free"}, 0.02},
	{[]string{"vegan", "gluten-free"}, 0.01},
}
