package domain

// QuoteToDisplay is the public view of a quote. Owner ids and timestamps are stripped.
type QuoteToDisplay struct {
	ID     string
	Quote  string
	Author string
}

// CommentToDisplay is the public view of a comment. All identifiers are stripped.
type CommentToDisplay struct {
	Comment string
	Author  string
}

// DisplayQuote projects a single quote.
func DisplayQuote(q Quote) QuoteToDisplay {
	return QuoteToDisplay{ID: q.ID, Quote: q.Quote, Author: q.Author}
}

// DisplayQuotes projects quotes in their stored order.
func DisplayQuotes(quotes []Quote) []QuoteToDisplay {
	out := make([]QuoteToDisplay, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, DisplayQuote(q))
	}

	return out
}

// DisplayComment projects a single comment.
func DisplayComment(c Comment) CommentToDisplay {
	return CommentToDisplay{Comment: c.Comment, Author: c.AuthorName}
}

// DisplayCommentsOn keeps the comments attached to quoteID and projects them in stored order.
func DisplayCommentsOn(quoteID string, comments []Comment) []CommentToDisplay {
	out := make([]CommentToDisplay, 0)
	for _, c := range comments {
		if c.On(quoteID) {
			out = append(out, DisplayComment(c))
		}
	}

	return out
}
