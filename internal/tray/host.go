package tray

import "github.com/getlantern/systray"

// Item is the part of a native menu item the tray drives.
type Item interface {
	SetTitle(title string)
	SetTooltip(tooltip string)
	SetIcon(icon []byte)
	Show()
	Hide()
	Enable()
	Disable()
	Clicked() <-chan struct{}
	AddSubItem(title, tooltip string) Item
}

// Host is the notification area the tray draws into.
type Host interface {
	SetIcon(icon []byte)
	SetTooltip(tooltip string)
	AddItem(title, tooltip string) Item
	AddSeparator()
	Quit()
}

type systrayHost struct{}

func (systrayHost) SetIcon(icon []byte)       { systray.SetIcon(icon) }
func (systrayHost) SetTooltip(tooltip string) { systray.SetTooltip(tooltip) }
func (systrayHost) AddSeparator()             { systray.AddSeparator() }
func (systrayHost) Quit()                     { systray.Quit() }

func (systrayHost) AddItem(title, tooltip string) Item {
	return systrayItem{systray.AddMenuItem(title, tooltip)}
}

type systrayItem struct {
	*systray.MenuItem
}

func (i systrayItem) Clicked() <-chan struct{} {
	return i.ClickedCh
}

func (i systrayItem) AddSubItem(title, tooltip string) Item {
	return systrayItem{i.AddSubMenuItem(title, tooltip)}
}
