/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

package handlers

import (
	"net/http"
)

type resourceHandler struct {
	root string
}

// NewResourceHandler returns a Handler serving the files under the provided
// directory, such as the dashboard's compiled frontend, from `/`.
func NewResourceHandler(root string) Handler {
	return &resourceHandler{
		root: root,
	}
}

func (rh *resourceHandler) HandlersByPath() map[string]func(http.ResponseWriter, *http.Request) {
	return map[string]func(http.ResponseWriter, *http.Request){
		"/": http.FileServer(http.Dir(rh.root)).ServeHTTP,
	}
}

// Register registers each of the provided Handlers' handlers on the provided
// ServeMux.
func Register(mux *http.ServeMux, handlers ...Handler) {
	for _, h := range handlers {
		for path, handler := range h.HandlersByPath() {
			mux.HandleFunc(path, handler)
		}
	}
}
