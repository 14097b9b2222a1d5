// Command story-soundtracker matches narrative text to music.
package main

func main() {
	Execute()
}
