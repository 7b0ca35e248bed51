// Package domain contains the entities shared by the scraper's stages: the
// per-link download outcome and the summary of a whole run. They carry no
// behaviour beyond simple accessors so every stage can depend on them.
package domain
