/*
Package codec translates the wire format spoken by HTTP clients, MCP tools and
fixture files into the domain model, and domain results back into response
envelopes.

The wire format keeps the short keys of the classic definitions of each
automaton family:

	NFA   Q, E, T=[[q, a, [q'...]]], q0=[...], F
	RA    Q, E, T=[[q, a, r, [q'...]]], R0={r: v|null}, U=[[q, a, r]], q0, F
	SAFA  Q, E, H, T=[[q, a, "h,0"|"h,1"|"-", ["q',h"|"q',-"...]]], q0, F
	CCA   Q, E, I, F, T=[[q, a, [op, n], "*"|"0"|"+n", [q'...]]]
	CMA   Q, E, T=[[q, a, p|"-", [q'...]]], q0, Fl, Fg

Test cases are lists of symbols (NFA) or lists of [symbol, value] pairs.
Numeric strings in data positions are read as numbers.
*/
package codec
