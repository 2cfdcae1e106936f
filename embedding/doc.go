// Package embedding trains node embeddings from a walk corpus with skip-gram
// and negative sampling.
//
// Training follows the word2vec recipe:
//
//   - input vectors start uniform in [-0.5/dim, 0.5/dim), output vectors at zero;
//   - for every (center, context) pair inside Window positions, one positive and
//     Negative negative updates, negatives drawn from a unigram^0.75 table;
//   - the sigmoid is clamped at ±6;
//   - the learning rate decays linearly from LearningRate to 1e-4*LearningRate
//     over Epochs passes.
//
// Updates run sequentially in corpus order from one seeded PCG source, so equal
// corpus, config and seed produce bit-identical embeddings.
package embedding
