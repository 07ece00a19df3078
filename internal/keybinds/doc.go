/*
Package keybinds provides customizable keyboard binding management.

Bindings live in contexts: global, upload, list, picker, search, viewer
and help. A key is looked up in the active context first, then in global,
so a context binding shadows a global one.

Users override defaults in ~/.resumedesk/keybinds.json. Each section maps
an action to a comma-separated key list:

	{
	  "version": "1.0",
	  "list": { "refresh": "r,ctrl+r" },
	  "global": { "quit": "q,ctrl+q" }
	}

Listing an action replaces all of its default keys in that context.
Unknown actions and empty keys are rejected when the file is applied.
*/
package keybinds
