package discovery

// Candidate is a pet profile shown to the viewer during discovery.
type Candidate struct {
	ID          string   `json:"id"`
	OwnerID     string   `json:"ownerId,omitempty"`
	Name        string   `json:"name"`
	Age         string   `json:"age"`
	Breed       string   `json:"breed"`
	Distance    string   `json:"distance"`
	Bio         string   `json:"bio"`
	Interests   []string `json:"interests"`
	Personality []string `json:"personality"`
	Images      []string `json:"images"`
	Liked       bool     `json:"liked"`
	LastActive  string   `json:"lastActive"`
}

// CandidateQueue is an ordered list of candidates with a cursor that wraps to the front.
type CandidateQueue struct {
	items  []Candidate
	cursor int
}

// NewCandidateQueue builds a queue positioned on the first candidate.
func NewCandidateQueue(candidates []Candidate) CandidateQueue {
	var q CandidateQueue
	q.Replace(candidates)
	return q
}

// Current returns the candidate under the cursor, or false when the queue is empty.
func (q CandidateQueue) Current() (Candidate, bool) {
	if len(q.items) == 0 {
		return Candidate{}, false
	}
	return q.items[q.cursor], true
}

// Advance moves to the next candidate, wrapping to 0 after the last one.
func (q *CandidateQueue) Advance() {
	if len(q.items) == 0 {
		return
	}
	q.cursor++
	if q.cursor >= len(q.items) {
		q.cursor = 0
	}
}

// Replace swaps in a fresh candidate list and rewinds the cursor.
// Candidates without images are skipped since nothing could be displayed for them.
func (q *CandidateQueue) Replace(candidates []Candidate) {
	items := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if len(c.Images) == 0 {
			continue
		}
		items = append(items, c)
	}
	q.items = items
	q.cursor = 0
}

// Len reports the number of candidates in the queue.
func (q CandidateQueue) Len() int { return len(q.items) }

// Cursor reports the index of the current candidate.
func (q CandidateQueue) Cursor() int { return q.cursor }

// markLiked flags the current candidate as liked on a private copy of the backing slice,
// so snapshots handed out earlier keep their values.
func (q *CandidateQueue) markLiked() (Candidate, bool) {
	if len(q.items) == 0 {
		return Candidate{}, false
	}
	items := make([]Candidate, len(q.items))
	copy(items, q.items)
	items[q.cursor].Liked = true
	q.items = items
	return items[q.cursor], true
}
