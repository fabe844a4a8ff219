// Package nfl holds the closed NFL domain enumerations: the 32 canonical
// team slugs, the Week type covering regular-season weeks and playoff
// rounds, and season-year arithmetic shared by the scrapers.
//
// Teams are identified by mascot slug rather than city or abbreviation:
// "redskins" rather than "Washington", "eagles" rather than "PHL". A week is
// either an integer in [1,17] or one of the four playoff rounds. A season is
// named by the year it starts in, so the 2013 season includes games played
// in early 2014.
package nfl
