/*
Package markov provides an in-memory, variable-order weighted Markov chain
for learning word sequences from text and generating new sentences.

A Model records, for every context of one up to a configured maximum number
of preceding tokens, how often each token followed it. Every transition is
counted under the full context and all of its shorter suffixes, so generation
can blend specific, high-order evidence with general, low-order evidence
without a separate smoothing pass. The blend weight controls how strongly a
longer context outweighs the accumulated evidence of its shorter suffixes.

Typical use:

	m, err := markov.NewModel(markov.DefaultMaxOrder, markov.DefaultBlendWeight)
	if err != nil {
		return err
	}
	if _, err := m.TrainReader(ctx, corpus); err != nil {
		return err
	}
	fmt.Println(m.Generate())

The model is never persisted and is not safe for concurrent use.
*/
package markov
