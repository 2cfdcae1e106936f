// Package deepwalk implements attributed DeepWalk: attribute-biased random
// walks, a skip-gram embedding of the walk corpus, and per-dimension ridge
// regression from the embedding back to the attributes to fill in every
// missing value.
//
// Transition weights fuse attribute and structural similarity:
//
//	w(u,v) = a*attr(u,v) + (1-a)*overlap(cover(u), cover(v))
//
// attr is walk.AttributeSimilarity, cover(x) is the set of nodes within
// coverDepth hops of x and overlap is |A∩B| / min(|A|,|B|). The default a=1
// uses attributes only.
//
// Options: the strategy.EmbedConfig keys plus
//
//	fusion        a in [0,1]                               default 1
//	coverDepth    hop radius of the covers                 default 2
//	ridge         L2 penalty of the reconstruction         default 0.1
//	similarNodes  neighbors for underdetermined dimensions  default 5
//
// Known values are returned untouched. A dimension known on no more nodes
// than embeddingDim is underdetermined for the regression; its missing values
// take the inverse-distance mean of the similarNodes embeddings most
// cosine-similar to theirs among the nodes knowing it. With fewer than
// similarNodes such nodes the subset is used, with none the column mean, then
// 0; each shortfall is recorded as a *strategy.InsufficientNeighborsError.
package deepwalk
