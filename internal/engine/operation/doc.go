// Package operation defines the atomic edit operations over a document
// tree and its selection, and the applier that executes them.
//
// Operations are the sole unit of mutation in the engine: nothing else is
// permitted to change tree or selection state. Each operation carries
// enough payload to be applied and to be inverted (RemoveText carries the
// removed string, MergeNode the discarded key, and so on), so an op log
// is replayable in both directions.
//
// Within a batch, every operation's paths and offsets are expressed
// against the state as it exists immediately before that operation, never
// against the batch's original state.
package operation
