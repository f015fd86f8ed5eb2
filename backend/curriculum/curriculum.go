// Package curriculum holds the fixed 84-day study plan. The table is
// static reference data: it is defined once at startup and nothing in the
// server mutates it.
package curriculum

import "sort"

type Entry struct {
	Day      int    `json:"day"`
	Topic    string `json:"topic"`
	Phase    string `json:"phase"`
	Week     int    `json:"week"`
	IsReview bool   `json:"isReview,omitempty"`
}

const (
	phaseFoundations = "Foundations"
	phasePatterns    = "Patterns & Techniques"
	phaseCore        = "Core Data Structures"
	phaseAdvanced    = "Advanced Topics"
)

var table = map[int]Entry{
	// Phase 1: Foundations (Days 1-14)
	1:  {1, "Arrays & Basic Operations", phaseFoundations, 1, false},
	2:  {2, "String Manipulation", phaseFoundations, 1, false},
	3:  {3, "Time & Space Complexity", phaseFoundations, 1, false},
	4:  {4, "Standard Library Functions", phaseFoundations, 1, false},
	5:  {5, "Basic Math Operations", phaseFoundations, 1, false},
	6:  {6, "Input/Output Handling", phaseFoundations, 1, false},
	7:  {7, "Week 1 Review & Mixed Practice", phaseFoundations, 1, true},
	8:  {8, "Advanced Array Techniques", phaseFoundations, 2, false},
	9:  {9, "String Algorithms", phaseFoundations, 2, false},
	10: {10, "Bit Manipulation Basics", phaseFoundations, 2, false},
	11: {11, "Number Theory", phaseFoundations, 2, false},
	12: {12, "Pattern Recognition", phaseFoundations, 2, false},
	13: {13, "Problem Solving Strategies", phaseFoundations, 2, false},
	14: {14, "Week 2 Review & Assessment", phaseFoundations, 2, true},

	// Phase 2: Patterns & Techniques (Days 15-35)
	15: {15, "Two Pointers Technique", phasePatterns, 3, false},
	16: {16, "Hash Tables & Maps", phasePatterns, 3, false},
	17: {17, "Sorting Algorithms", phasePatterns, 3, false},
	18: {18, "Binary Search", phasePatterns, 3, false},
	19: {19, "Sliding Window", phasePatterns, 3, false},
	20: {20, "Basic Recursion", phasePatterns, 3, false},
	21: {21, "Week 3 Review & Mixed Practice", phasePatterns, 3, true},
	22: {22, "Advanced Two Pointers", phasePatterns, 4, false},
	23: {23, "Hash Set Applications", phasePatterns, 4, false},
	24: {24, "Merge Sort & Quick Sort", phasePatterns, 4, false},
	25: {25, "Binary Search Variations", phasePatterns, 4, false},
	26: {26, "Advanced Sliding Window", phasePatterns, 4, false},
	27: {27, "Recursion with Memoization", phasePatterns, 4, false},
	28: {28, "Week 4 Review & Assessment", phasePatterns, 4, true},
	29: {29, "Prefix Sums", phasePatterns, 5, false},
	30: {30, "Frequency Counting", phasePatterns, 5, false},
	31: {31, "Custom Sorting", phasePatterns, 5, false},
	32: {32, "Search in Rotated Arrays", phasePatterns, 5, false},
	33: {33, "Multiple Sliding Windows", phasePatterns, 5, false},
	34: {34, "Divide and Conquer", phasePatterns, 5, false},
	35: {35, "Week 5 Review & Mixed Practice", phasePatterns, 5, true},

	// Phase 3: Core Data Structures (Days 36-63)
	36: {36, "Linked Lists Basics", phaseCore, 6, false},
	37: {37, "Linked List Manipulation", phaseCore, 6, false},
	38: {38, "Stacks Implementation", phaseCore, 6, false},
	39: {39, "Stack Applications", phaseCore, 6, false},
	40: {40, "Queues & Deques", phaseCore, 6, false},
	41: {41, "Queue Applications", phaseCore, 6, false},
	42: {42, "Week 6 Review & Assessment", phaseCore, 6, true},
	43: {43, "Binary Trees Basics", phaseCore, 7, false},
	44: {44, "Tree Traversals", phaseCore, 7, false},
	45: {45, "Binary Search Trees", phaseCore, 7, false},
	46: {46, "Tree Construction", phaseCore, 7, false},
	47: {47, "Backtracking Introduction", phaseCore, 7, false},
	48: {48, "Backtracking Applications", phaseCore, 7, false},
	49: {49, "Week 7 Review & Mixed Practice", phaseCore, 7, true},
	50: {50, "Heaps & Priority Queues", phaseCore, 8, false},
	51: {51, "Heap Applications", phaseCore, 8, false},
	52: {52, "Advanced Tree Problems", phaseCore, 8, false},
	53: {53, "Tree Optimization", phaseCore, 8, false},
	54: {54, "Complex Backtracking", phaseCore, 8, false},
	55: {55, "Permutations & Combinations", phaseCore, 8, false},
	56: {56, "Week 8 Review & Assessment", phaseCore, 8, true},
	57: {57, "Trie Data Structure", phaseCore, 9, false},
	58: {58, "Advanced Linked Lists", phaseCore, 9, false},
	59: {59, "Stack & Queue Combinations", phaseCore, 9, false},
	60: {60, "Tree Balancing", phaseCore, 9, false},
	61: {61, "Advanced Heaps", phaseCore, 9, false},
	62: {62, "Data Structure Design", phaseCore, 9, false},
	63: {63, "Week 9 Review & Mixed Practice", phaseCore, 9, true},

	// Phase 4: Advanced Topics (Days 64-84)
	64: {64, "Graph Representation", phaseAdvanced, 10, false},
	65: {65, "Graph Traversal (BFS/DFS)", phaseAdvanced, 10, false},
	66: {66, "Shortest Path Algorithms", phaseAdvanced, 10, false},
	67: {67, "Dynamic Programming Basics", phaseAdvanced, 10, false},
	68: {68, "DP Pattern Recognition", phaseAdvanced, 10, false},
	69: {69, "Greedy Algorithms", phaseAdvanced, 10, false},
	70: {70, "Week 10 Review & Assessment", phaseAdvanced, 10, true},
	71: {71, "Advanced Graph Algorithms", phaseAdvanced, 11, false},
	72: {72, "Complex DP Problems", phaseAdvanced, 11, false},
	73: {73, "Advanced Greedy", phaseAdvanced, 11, false},
	74: {74, "Union Find", phaseAdvanced, 11, false},
	75: {75, "Segment Trees", phaseAdvanced, 11, false},
	76: {76, "Advanced Optimization", phaseAdvanced, 11, false},
	77: {77, "Week 11 Review & Mixed Practice", phaseAdvanced, 11, true},
	78: {78, "System Design Basics", phaseAdvanced, 12, false},
	79: {79, "Interview Preparation", phaseAdvanced, 12, false},
	80: {80, "Mock Interviews", phaseAdvanced, 12, false},
	81: {81, "Final Review Session 1", phaseAdvanced, 12, true},
	82: {82, "Final Review Session 2", phaseAdvanced, 12, true},
	83: {83, "Capstone Challenge", phaseAdvanced, 12, false},
	84: {84, "Graduation & Next Steps", phaseAdvanced, 12, true},
}

// Get returns the curriculum entry for a day.
func Get(day int) (Entry, bool) {
	entry, ok := table[day]
	return entry, ok
}

// TopicFor returns the topic title for a day, or an empty string for days
// outside the plan.
func TopicFor(day int) string {
	return table[day].Topic
}

// Overview returns every entry ordered by day.
func Overview() []Entry {
	entries := make([]Entry, 0, len(table))
	for _, entry := range table {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Day < entries[j].Day })
	return entries
}
