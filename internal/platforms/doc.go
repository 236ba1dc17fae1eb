// package platforms talks to the external streaming services used to verify
// submitted track URLs and enrich chart entries.
//
// Each platform is a thin client over its public API: Spotify authenticates
// with the client credentials grant, SoundCloud with a public client ID, and
// YouTube with a Data API key. A Verifier dispatches a URL to the matching
// platform by host and CrossPlatformSearch fans a query out to every
// configured platform at once.
package platforms
