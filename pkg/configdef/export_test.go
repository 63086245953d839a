package configdef

func HasDupWallTitles(walls []Wall) bool {
	return hasDupWallTitles(walls)
}
